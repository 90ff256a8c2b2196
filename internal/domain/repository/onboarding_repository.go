package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type OnboardingRepository interface {
	FindQuestions(ctx context.Context) ([]entity.OnboardingQuestion, error)
	// SaveResult replaces any previous result for the same patient and marks
	// the patient as onboarded.
	SaveResult(ctx context.Context, result *entity.OnboardingResult) error
	FindResultByPatientID(ctx context.Context, patientID string) (*entity.OnboardingResult, error)
}
