package converter

import (
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
)

// QuestionToResponse omits the scene mapping, which stays server-side
func QuestionToResponse(question *entity.OnboardingQuestion) *dto.OnboardingQuestionResponse {
	if question == nil {
		return nil
	}

	options := make([]dto.QuestionOptionResponse, len(question.Options))
	for i, opt := range question.Options {
		options[i] = dto.QuestionOptionResponse{
			Value: opt.Value,
			Label: opt.Label,
			Score: opt.Score,
		}
	}

	return &dto.OnboardingQuestionResponse{
		ID:       question.ID,
		Category: question.Category,
		Question: question.Question,
		Options:  options,
	}
}

func QuestionsToResponses(questions []entity.OnboardingQuestion) []dto.OnboardingQuestionResponse {
	responses := make([]dto.OnboardingQuestionResponse, len(questions))
	for i := range questions {
		responses[i] = *QuestionToResponse(&questions[i])
	}
	return responses
}

func OnboardingResultToResponse(result *entity.OnboardingResult) *dto.OnboardingResultResponse {
	if result == nil {
		return nil
	}
	return &dto.OnboardingResultResponse{
		PatientID:         result.PatientID,
		Responses:         OnboardingResponsesToDTO(result.Responses),
		TotalScore:        result.TotalScore,
		RecommendedScenes: result.RecommendedScenes,
		CompletedAt:       result.CompletedAt,
	}
}

func OnboardingResponsesToDTO(responses []entity.OnboardingResponse) []dto.OnboardingResponseDTO {
	out := make([]dto.OnboardingResponseDTO, len(responses))
	for i, r := range responses {
		out[i] = dto.OnboardingResponseDTO{
			QuestionID:    r.QuestionID,
			SelectedValue: r.SelectedValue,
			Score:         r.Score,
		}
	}
	return out
}
