package dto

type EnvironmentSettingResponse struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Options []string `json:"options,omitempty"`
	Default any      `json:"default"`
}

type ABAParametersResponse struct {
	TargetBehavior  string   `json:"target_behavior"`
	MeasurementType string   `json:"measurement_type"`
	PromptLevels    []string `json:"prompt_levels"`
}

type VRSceneResponse struct {
	ID                  string                                `json:"id"`
	Name                string                                `json:"name"`
	Description         string                                `json:"description"`
	Category            string                                `json:"category"`
	Duration            int                                   `json:"duration"`
	Difficulty          string                                `json:"difficulty"`
	TargetSkills        []string                              `json:"target_skills"`
	ABAParameters       ABAParametersResponse                 `json:"aba_parameters"`
	EnvironmentSettings map[string]EnvironmentSettingResponse `json:"environment_settings"`
	Preferences         map[string]EnvironmentSettingResponse `json:"preferences"`
	DefaultSettings     map[string]any                        `json:"default_settings"`
}

type VRSceneListResponse struct {
	Scenes []VRSceneResponse `json:"scenes"`
	Total  int               `json:"total"`
}
