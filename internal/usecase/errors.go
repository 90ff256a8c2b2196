package usecase

import (
	"errors"

	"vr-therapy-platform/internal/domain/repository"
)

var (
	ErrPatientNotFound          = repository.ErrPatientNotFound
	ErrTherapistNotFound        = errors.New("therapist not found")
	ErrSceneNotFound            = errors.New("vr scene not found")
	ErrOnboardingResultNotFound = errors.New("onboarding result not found")
	ErrPatientNotAssigned       = errors.New("patient is not assigned to this therapist")
	ErrInvalidDateFormat        = errors.New("invalid date format, use YYYY-MM-DD")
)
