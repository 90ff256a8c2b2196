package usecase

import (
	"context"
	"time"

	"vr-therapy-platform/internal/converter"
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PatientUsecase interface {
	Enroll(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error)
	GetPatientsByTherapist(ctx context.Context, therapistID string) (*dto.PatientListResponse, error)
	EnsureAssigned(ctx context.Context, therapistID, patientID string) error
	GetProgress(ctx context.Context, id string) (*dto.PatientProgressResponse, error)
}

type patientUsecase struct {
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	therapistRepo  repository.TherapistRepository
	reportRepo     repository.SessionReportRepository
	onboardingRepo repository.OnboardingRepository
	audit          service.AuditService
	now            func() time.Time
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	therapistRepo repository.TherapistRepository,
	reportRepo repository.SessionReportRepository,
	onboardingRepo repository.OnboardingRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:            log,
		patientRepo:    patientRepo,
		therapistRepo:  therapistRepo,
		reportRepo:     reportRepo,
		onboardingRepo: onboardingRepo,
		audit:          audit,
		now:            time.Now,
	}
}

// Enroll registers a new patient. The assigned therapist must exist; when the
// request names none, the acting therapist is assigned.
func (u *patientUsecase) Enroll(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse(entity.DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	today := u.now()
	enrollmentDate := today.Format(entity.DateLayout)
	if req.EnrollmentDate != "" {
		if _, err := time.Parse(entity.DateLayout, req.EnrollmentDate); err != nil {
			return nil, ErrInvalidDateFormat
		}
		enrollmentDate = req.EnrollmentDate
	}

	therapistID := req.AssignedTherapist
	if therapistID == "" {
		if actor, ok := ActorFromContext(ctx); ok && actor.Role == entity.RoleTherapist {
			therapistID = actor.ID
		}
	}
	if err := u.ensureTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		ID:                 "P-" + uuid.NewString(),
		Name:               req.Name,
		DateOfBirth:        req.DateOfBirth,
		Age:                entity.AgeOn(dob, today),
		GuardianName:       req.GuardianName,
		GuardianPhone:      req.GuardianPhone,
		GuardianEmail:      req.GuardianEmail,
		Diagnosis:          req.Diagnosis,
		SecondaryDiagnosis: req.SecondaryDiagnosis,
		AssignedTherapist:  therapistID,
		EnrollmentDate:     enrollmentDate,
		TherapyGoals:       req.TherapyGoals,
		SensoryProfile:     converter.SensoryProfileFromDTO(req.SensoryProfile),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := recordAudit(ctx, u.audit, entity.AuditActionPatientEnroll, map[string]any{
		"patient_id":         patient.ID,
		"assigned_therapist": patient.AssignedTherapist,
	}); err != nil {
		u.log.Warnf("Failed to record enrollment audit entry: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

// Update applies a partial update. A changed date of birth also refreshes
// the stored age.
func (u *patientUsecase) Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patch := converter.UpdatePatientRequestToPatch(req)

	if patch.DateOfBirth != nil {
		dob, err := time.Parse(entity.DateLayout, *patch.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		age := entity.AgeOn(dob, u.now())
		patch.Age = &age
	}

	if patch.AssignedTherapist != nil {
		if err := u.ensureTherapist(ctx, *patch.AssignedTherapist); err != nil {
			return nil, err
		}
	}

	patient, err := u.patientRepo.Update(ctx, id, patch)
	if err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	if err := recordAudit(ctx, u.audit, entity.AuditActionPatientUpdate, map[string]any{
		"patient_id": id,
	}); err != nil {
		u.log.Warnf("Failed to record patient update audit entry: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatientsByTherapist(ctx context.Context, therapistID string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByTherapistID(ctx, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find patients for therapist %s: %+v", therapistID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// EnsureAssigned fails unless the patient exists and is assigned to the
// therapist
func (u *patientUsecase) EnsureAssigned(ctx context.Context, therapistID, patientID string) error {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if patient.AssignedTherapist != therapistID {
		return ErrPatientNotAssigned
	}
	return nil
}

// GetProgress summarises the patient's sessions and onboarding outcome
func (u *patientUsecase) GetProgress(ctx context.Context, id string) (*dto.PatientProgressResponse, error) {
	patient, err := u.findPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	reports, err := u.reportRepo.FindByPatientID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find session reports for patient %s: %+v", id, err)
		return nil, err
	}

	latest, err := u.reportRepo.FindLatestByPatientID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find latest session report for patient %s: %+v", id, err)
		return nil, err
	}

	progress := &dto.PatientProgressResponse{
		PatientID:                    patient.ID,
		TotalSessions:                len(reports),
		AveragePercentageIndependent: AveragePercentageIndependent(reports),
		LatestSession:                converter.SessionReportToResponse(latest),
		HasCompletedOnboarding:       patient.HasCompletedOnboarding,
	}
	for _, r := range reports {
		if r.CompletionStatus == entity.CompletionCompleted {
			progress.CompletedSessions++
		}
	}

	result, err := u.onboardingRepo.FindResultByPatientID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find onboarding result for patient %s: %+v", id, err)
		return nil, err
	}
	if result != nil {
		score := result.TotalScore
		progress.OnboardingScore = &score
		progress.RecommendedScenes = result.RecommendedScenes
	}

	return progress, nil
}

func (u *patientUsecase) findPatient(ctx context.Context, id string) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) ensureTherapist(ctx context.Context, id string) error {
	if id == "" {
		return ErrTherapistNotFound
	}
	therapist, err := u.therapistRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find therapist %s: %+v", id, err)
		return err
	}
	if therapist == nil {
		return ErrTherapistNotFound
	}
	return nil
}

// AveragePercentageIndependent averages the reports' independence
// percentages to one decimal place; 0 when there are no reports
func AveragePercentageIndependent(reports []entity.SessionReport) float64 {
	if len(reports) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reports {
		sum = sum.Add(decimal.NewFromInt(int64(r.ABAData.PercentageIndependent)))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(reports)))).Round(1).Float64()
	return avg
}
