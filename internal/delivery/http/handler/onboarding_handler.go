package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"vr-therapy-platform/internal/converter"
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"
	"vr-therapy-platform/pkg/validator"

	"github.com/sirupsen/logrus"
)

type OnboardingHandler struct {
	log               *logrus.Logger
	onboardingUsecase usecase.OnboardingUsecase
	patientUsecase    usecase.PatientUsecase
	validator         *validator.CustomValidator
}

func NewOnboardingHandler(
	log *logrus.Logger,
	onboardingUsecase usecase.OnboardingUsecase,
	patientUsecase usecase.PatientUsecase,
	validator *validator.CustomValidator,
) *OnboardingHandler {
	return &OnboardingHandler{
		log:               log,
		onboardingUsecase: onboardingUsecase,
		patientUsecase:    patientUsecase,
		validator:         validator,
	}
}

// GetQuestions lists the onboarding questionnaire
// @Summary Onboarding questions
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Router /onboarding/questions [get]
func (h *OnboardingHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.onboardingUsecase.Questions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get onboarding questions")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding questions retrieved successfully", &dto.OnboardingQuestionListResponse{
		Questions: converter.QuestionsToResponses(questions),
		Total:     len(questions),
	})
}

// Start begins onboarding, discarding any unfinished attempt
// @Summary Start onboarding
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Router /guardian/onboarding/start [post]
// @Router /therapist/patients/{id}/onboarding/start [post]
func (h *OnboardingHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.onboardingUsecase.Start)
}

// GetProgress returns the current question and answers so far
// @Summary Onboarding progress
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /guardian/onboarding [get]
// @Router /therapist/patients/{id}/onboarding [get]
func (h *OnboardingHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.onboardingUsecase.Progress)
}

// SelectAnswer marks an option of the current question
// @Summary Select answer
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param request body dto.SelectAnswerRequest true "Select Answer Request"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /guardian/onboarding/answer [post]
// @Router /therapist/patients/{id}/onboarding/answer [post]
func (h *OnboardingHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	var req dto.SelectAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	progress, err := h.onboardingUsecase.Select(r.Context(), patientID, req.Value)
	h.writeProgress(w, progress, err)
}

// Advance confirms the selected answer; the last one completes onboarding
// @Summary Next question
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /guardian/onboarding/next [post]
// @Router /therapist/patients/{id}/onboarding/next [post]
func (h *OnboardingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.onboardingUsecase.Advance)
}

// Retreat returns to the previous question with its answer preselected
// @Summary Previous question
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /guardian/onboarding/back [post]
// @Router /therapist/patients/{id}/onboarding/back [post]
func (h *OnboardingHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.onboardingUsecase.Retreat)
}

// GetResult returns the saved onboarding result
// @Summary Onboarding result
// @Tags Onboarding
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /guardian/onboarding/result [get]
// @Router /therapist/patients/{id}/onboarding/result [get]
func (h *OnboardingHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	result, err := h.onboardingUsecase.Result(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrOnboardingResultNotFound) {
			response.NotFound(w, "Onboarding has not been completed")
			return
		}
		response.InternalServerError(w, "Failed to get onboarding result")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding result retrieved successfully", converter.OnboardingResultToResponse(result))
}

func (h *OnboardingHandler) step(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, patientID string) (*usecase.OnboardingProgress, error),
) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	progress, err := fn(r.Context(), patientID)
	h.writeProgress(w, progress, err)
}

func (h *OnboardingHandler) writeProgress(w http.ResponseWriter, progress *usecase.OnboardingProgress, err error) {
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOnboardingNotStarted):
			response.NotFound(w, err.Error())
		case errors.Is(err, usecase.ErrNoAnswerSelected),
			errors.Is(err, usecase.ErrUnknownOption),
			errors.Is(err, usecase.ErrAtFirstQuestion),
			errors.Is(err, usecase.ErrFlowCompleted):
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNoQuestions):
			response.Conflict(w, err.Error())
		default:
			h.log.Warnf("Failed to process onboarding step: %+v", err)
			response.InternalServerError(w, "Failed to process onboarding")
		}
		return
	}

	response.Success(w, http.StatusOK, "Onboarding progress retrieved successfully", onboardingProgressToResponse(progress))
}

func onboardingProgressToResponse(p *usecase.OnboardingProgress) *dto.OnboardingProgressResponse {
	return &dto.OnboardingProgressResponse{
		PatientID: p.PatientID,
		Index:     p.Index,
		Total:     p.Total,
		Question:  converter.QuestionToResponse(p.Question),
		Candidate: p.Candidate,
		Responses: converter.OnboardingResponsesToDTO(p.Responses),
		Completed: p.Completed,
		Result:    converter.OnboardingResultToResponse(p.Result),
	}
}
