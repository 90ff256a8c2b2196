package usecase

import (
	"context"
	"sync"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/service"

	"github.com/sirupsen/logrus"
)

// OnboardingProgress is a read-only view of a flow
type OnboardingProgress struct {
	PatientID string
	Index     int
	Total     int
	Question  *entity.OnboardingQuestion
	Candidate string
	Responses []entity.OnboardingResponse
	Completed bool
	Result    *entity.OnboardingResult
}

func progressOf(flow *OnboardingFlow) *OnboardingProgress {
	return &OnboardingProgress{
		PatientID: flow.PatientID(),
		Index:     flow.Index(),
		Total:     flow.Total(),
		Question:  flow.Current(),
		Candidate: flow.Candidate(),
		Responses: flow.Responses(),
		Completed: flow.Completed(),
		Result:    flow.Result(),
	}
}

// OnboardingUsecase runs onboarding flows keyed by patient id and persists
// their results. Guardian self-service and therapist-initiated onboarding
// both go through it.
type OnboardingUsecase interface {
	Questions(ctx context.Context) ([]entity.OnboardingQuestion, error)
	NewFlow(ctx context.Context, patientID string) (*OnboardingFlow, error)
	Start(ctx context.Context, patientID string) (*OnboardingProgress, error)
	Progress(ctx context.Context, patientID string) (*OnboardingProgress, error)
	Select(ctx context.Context, patientID, value string) (*OnboardingProgress, error)
	Advance(ctx context.Context, patientID string) (*OnboardingProgress, error)
	Retreat(ctx context.Context, patientID string) (*OnboardingProgress, error)
	Complete(ctx context.Context, flow *OnboardingFlow) (*entity.OnboardingResult, error)
	Result(ctx context.Context, patientID string) (*entity.OnboardingResult, error)
}

type onboardingUsecase struct {
	log            *logrus.Logger
	onboardingRepo repository.OnboardingRepository
	patientRepo    repository.PatientRepository
	audit          service.AuditService

	mu    sync.Mutex
	flows map[string]*OnboardingFlow
}

func NewOnboardingUsecase(
	log *logrus.Logger,
	onboardingRepo repository.OnboardingRepository,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) OnboardingUsecase {
	return &onboardingUsecase{
		log:            log,
		onboardingRepo: onboardingRepo,
		patientRepo:    patientRepo,
		audit:          audit,
		flows:          make(map[string]*OnboardingFlow),
	}
}

func (u *onboardingUsecase) Questions(ctx context.Context) ([]entity.OnboardingQuestion, error) {
	questions, err := u.onboardingRepo.FindQuestions(ctx)
	if err != nil {
		u.log.Warnf("Failed to find onboarding questions: %+v", err)
		return nil, err
	}
	return questions, nil
}

// NewFlow creates a detached flow for a patient. The caller drives it and
// hands it to Complete.
func (u *onboardingUsecase) NewFlow(ctx context.Context, patientID string) (*OnboardingFlow, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	questions, err := u.Questions(ctx)
	if err != nil {
		return nil, err
	}
	return NewOnboardingFlow(patientID, questions)
}

// Start begins a fresh flow for the patient, discarding any unfinished one
func (u *onboardingUsecase) Start(ctx context.Context, patientID string) (*OnboardingProgress, error) {
	flow, err := u.NewFlow(ctx, patientID)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	u.flows[patientID] = flow
	u.mu.Unlock()

	return progressOf(flow), nil
}

func (u *onboardingUsecase) Progress(ctx context.Context, patientID string) (*OnboardingProgress, error) {
	return u.withFlow(patientID, func(flow *OnboardingFlow) error { return nil })
}

func (u *onboardingUsecase) Select(ctx context.Context, patientID, value string) (*OnboardingProgress, error) {
	return u.withFlow(patientID, func(flow *OnboardingFlow) error {
		return flow.SelectAnswer(value)
	})
}

// Advance finalizes the current answer. Completing the last question saves
// the result; if saving fails, calling Advance again retries the save.
func (u *onboardingUsecase) Advance(ctx context.Context, patientID string) (*OnboardingProgress, error) {
	u.mu.Lock()
	flow, ok := u.flows[patientID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrOnboardingNotStarted
	}
	if !flow.Completed() {
		if _, err := flow.Advance(); err != nil {
			u.mu.Unlock()
			return nil, err
		}
	}
	progress := progressOf(flow)
	u.mu.Unlock()

	if !progress.Completed {
		return progress, nil
	}

	if _, err := u.Complete(ctx, flow); err != nil {
		return nil, err
	}

	u.mu.Lock()
	if u.flows[patientID] == flow {
		delete(u.flows, patientID)
	}
	u.mu.Unlock()
	return progress, nil
}

func (u *onboardingUsecase) Retreat(ctx context.Context, patientID string) (*OnboardingProgress, error) {
	return u.withFlow(patientID, func(flow *OnboardingFlow) error {
		return flow.Retreat()
	})
}

// Complete persists the result of a completed flow and marks the patient as
// onboarded
func (u *onboardingUsecase) Complete(ctx context.Context, flow *OnboardingFlow) (*entity.OnboardingResult, error) {
	result := flow.Result()
	if result == nil {
		return nil, ErrFlowNotCompleted
	}

	if err := u.onboardingRepo.SaveResult(ctx, result); err != nil {
		u.log.Warnf("Failed to save onboarding result for %s: %+v", result.PatientID, err)
		return nil, err
	}

	if err := recordAudit(ctx, u.audit, entity.AuditActionOnboardingComplete, map[string]any{
		"patient_id":         result.PatientID,
		"total_score":        result.TotalScore,
		"recommended_scenes": result.RecommendedScenes,
	}); err != nil {
		u.log.Warnf("Failed to record onboarding audit entry: %+v", err)
	}

	u.log.Infof("Onboarding completed for %s with score %d", result.PatientID, result.TotalScore)
	return result, nil
}

func (u *onboardingUsecase) Result(ctx context.Context, patientID string) (*entity.OnboardingResult, error) {
	result, err := u.onboardingRepo.FindResultByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find onboarding result for %s: %+v", patientID, err)
		return nil, err
	}
	if result == nil {
		return nil, ErrOnboardingResultNotFound
	}
	return result, nil
}

func (u *onboardingUsecase) withFlow(patientID string, fn func(*OnboardingFlow) error) (*OnboardingProgress, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	flow, ok := u.flows[patientID]
	if !ok {
		return nil, ErrOnboardingNotStarted
	}
	if err := fn(flow); err != nil {
		return nil, err
	}
	return progressOf(flow), nil
}
