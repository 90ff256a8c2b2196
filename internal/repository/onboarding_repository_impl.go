package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type onboardingRepository struct {
	store       *StoreAdapter
	patientRepo domainRepo.PatientRepository
}

func NewOnboardingRepository(store *StoreAdapter, patientRepo domainRepo.PatientRepository) domainRepo.OnboardingRepository {
	return &onboardingRepository{
		store:       store,
		patientRepo: patientRepo,
	}
}

func (r *onboardingRepository) FindQuestions(ctx context.Context) ([]entity.OnboardingQuestion, error) {
	var questions []entity.OnboardingQuestion
	if err := r.store.readSeeded(ctx, OnboardingQuestionsKey, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SaveResult upserts by patient id, then flips the patient's onboarding flag.
// This is the only code path that marks a patient as onboarded. An unknown
// patient stores nothing.
func (r *onboardingRepository) SaveResult(ctx context.Context, result *entity.OnboardingResult) error {
	patient, err := r.patientRepo.FindByID(ctx, result.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return domainRepo.ErrPatientNotFound
	}

	if err := r.saveResult(ctx, result); err != nil {
		return err
	}

	completed := true
	_, err = r.patientRepo.Update(ctx, result.PatientID, entity.PatientPatch{
		HasCompletedOnboarding: &completed,
	})
	return err
}

func (r *onboardingRepository) saveResult(ctx context.Context, result *entity.OnboardingResult) error {
	if err := r.store.EnsureSeeded(ctx); err != nil {
		return err
	}
	defer r.store.lock(OnboardingResultsKey)()

	results, err := r.findResults(ctx)
	if err != nil {
		return err
	}

	kept := make([]entity.OnboardingResult, 0, len(results)+1)
	for _, existing := range results {
		if existing.PatientID != result.PatientID {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, *result)
	return r.store.Write(ctx, OnboardingResultsKey, kept)
}

func (r *onboardingRepository) FindResultByPatientID(ctx context.Context, patientID string) (*entity.OnboardingResult, error) {
	results, err := r.findResults(ctx)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].PatientID == patientID {
			return &results[i], nil
		}
	}
	return nil, nil
}

func (r *onboardingRepository) findResults(ctx context.Context) ([]entity.OnboardingResult, error) {
	var results []entity.OnboardingResult
	if err := r.store.readSeeded(ctx, OnboardingResultsKey, &results); err != nil {
		return nil, err
	}
	return results, nil
}
