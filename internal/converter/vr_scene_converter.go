package converter

import (
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
)

// VRSceneToResponse converts a VRScene entity, including its resolved
// default settings
func VRSceneToResponse(scene *entity.VRScene) *dto.VRSceneResponse {
	if scene == nil {
		return nil
	}

	skills := scene.TargetSkills
	if skills == nil {
		skills = []string{}
	}

	return &dto.VRSceneResponse{
		ID:           scene.ID,
		Name:         scene.Name,
		Description:  scene.Description,
		Category:     scene.Category,
		Duration:     scene.Duration,
		Difficulty:   scene.Difficulty,
		TargetSkills: skills,
		ABAParameters: dto.ABAParametersResponse{
			TargetBehavior:  scene.ABAParameters.TargetBehavior,
			MeasurementType: string(scene.ABAParameters.MeasurementType),
			PromptLevels:    scene.ABAParameters.PromptLevels,
		},
		EnvironmentSettings: settingsToResponses(scene.EnvironmentSettings),
		Preferences:         settingsToResponses(scene.Preferences),
		DefaultSettings:     scene.DefaultSettings(),
	}
}

func VRScenesToResponses(scenes []entity.VRScene) []dto.VRSceneResponse {
	responses := make([]dto.VRSceneResponse, len(scenes))
	for i := range scenes {
		responses[i] = *VRSceneToResponse(&scenes[i])
	}
	return responses
}

func settingsToResponses(settings map[string]entity.EnvironmentSetting) map[string]dto.EnvironmentSettingResponse {
	responses := make(map[string]dto.EnvironmentSettingResponse, len(settings))
	for name, s := range settings {
		responses[name] = dto.EnvironmentSettingResponse{
			Type:    string(s.Type),
			Label:   s.Label,
			Min:     s.Min,
			Max:     s.Max,
			Unit:    s.Unit,
			Options: s.Options,
			Default: s.Default,
		}
	}
	return responses
}
