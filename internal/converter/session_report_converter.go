package converter

import (
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
)

// SessionReportToResponse converts a SessionReport entity to DTO
func SessionReportToResponse(report *entity.SessionReport) *dto.SessionReportResponse {
	if report == nil {
		return nil
	}

	return &dto.SessionReportResponse{
		ID:                  report.ID,
		PatientID:           report.PatientID,
		TherapistID:         report.TherapistID,
		SceneID:             report.SceneID,
		Date:                report.Date,
		Duration:            report.Duration,
		CompletionStatus:    string(report.CompletionStatus),
		EnvironmentSettings: report.EnvironmentSettings,
		ABAData: dto.ABADataDTO{
			TargetBehavior:        report.ABAData.TargetBehavior,
			MeasurementType:       string(report.ABAData.MeasurementType),
			Baseline:              report.ABAData.Baseline,
			Achieved:              report.ABAData.Achieved,
			Unit:                  report.ABAData.Unit,
			PromptsUsed:           report.ABAData.PromptsUsed,
			IndependentTrials:     report.ABAData.IndependentTrials,
			PromptedTrials:        report.ABAData.PromptedTrials,
			PercentageIndependent: report.ABAData.PercentageIndependent,
		},
		BehavioralObservations: dto.BehavioralObservationsDTO{
			PositiveResponses:    report.BehavioralObservations.PositiveResponses,
			ChallengingBehaviors: report.BehavioralObservations.ChallengingBehaviors,
			EmotionalState:       report.BehavioralObservations.EmotionalState,
			EngagementLevel:      report.BehavioralObservations.EngagementLevel,
		},
		TherapistNotes:             report.TherapistNotes,
		NextSessionRecommendations: report.NextSessionRecommendations,
	}
}

func SessionReportsToResponses(reports []entity.SessionReport) []dto.SessionReportResponse {
	responses := make([]dto.SessionReportResponse, len(reports))
	for i := range reports {
		responses[i] = *SessionReportToResponse(&reports[i])
	}
	return responses
}

// ABADataFromDTO maps the request payload; the percentage is recomputed
func ABADataFromDTO(data dto.ABADataDTO) entity.ABAData {
	aba := entity.ABAData{
		TargetBehavior:    data.TargetBehavior,
		MeasurementType:   entity.MeasurementType(data.MeasurementType),
		Baseline:          data.Baseline,
		Achieved:          data.Achieved,
		Unit:              data.Unit,
		PromptsUsed:       data.PromptsUsed,
		IndependentTrials: data.IndependentTrials,
		PromptedTrials:    data.PromptedTrials,
	}
	aba.Recompute()
	return aba
}
