package usecase

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Guardian is the guardian projection of a patient record
type Guardian struct {
	Name  string
	Phone string
}

// GuardianMatch is a successful guardian credential check
type GuardianMatch struct {
	Patient  *entity.Patient
	Guardian Guardian
}

// AuthUsecase verifies role-scoped credentials. It holds no session state.
//
// A failed check is not an error: both methods return nil, nil. Errors are
// reserved for storage failures.
type AuthUsecase interface {
	AuthenticateTherapist(ctx context.Context, id, phone string) (*entity.Therapist, error)
	AuthenticateGuardian(ctx context.Context, patientID, phone string) (*GuardianMatch, error)
}

type authUsecase struct {
	log           *logrus.Logger
	therapistRepo repository.TherapistRepository
	patientRepo   repository.PatientRepository
}

func NewAuthUsecase(
	log *logrus.Logger,
	therapistRepo repository.TherapistRepository,
	patientRepo repository.PatientRepository,
) AuthUsecase {
	return &authUsecase{
		log:           log,
		therapistRepo: therapistRepo,
		patientRepo:   patientRepo,
	}
}

func (u *authUsecase) AuthenticateTherapist(ctx context.Context, id, phone string) (*entity.Therapist, error) {
	therapist, err := u.therapistRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find therapist %s: %+v", id, err)
		return nil, err
	}
	if therapist == nil || therapist.Phone != phone {
		return nil, nil
	}
	return therapist, nil
}

func (u *authUsecase) AuthenticateGuardian(ctx context.Context, patientID, phone string) (*GuardianMatch, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil || patient.GuardianPhone != phone {
		return nil, nil
	}
	return &GuardianMatch{
		Patient: patient,
		Guardian: Guardian{
			Name:  patient.GuardianName,
			Phone: patient.GuardianPhone,
		},
	}, nil
}
