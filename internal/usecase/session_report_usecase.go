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
	"github.com/sirupsen/logrus"
)

type SessionReportUsecase interface {
	CreateReport(ctx context.Context, req *dto.CreateSessionReportRequest) (*dto.SessionReportResponse, error)
	GetReportsByPatient(ctx context.Context, patientID string) (*dto.SessionReportListResponse, error)
	GetReportsByTherapist(ctx context.Context, therapistID string) (*dto.SessionReportListResponse, error)
	GetLatestReport(ctx context.Context, patientID string) (*dto.SessionReportResponse, error)
}

type sessionReportUsecase struct {
	log           *logrus.Logger
	reportRepo    repository.SessionReportRepository
	patientRepo   repository.PatientRepository
	therapistRepo repository.TherapistRepository
	sceneRepo     repository.VRSceneRepository
	audit         service.AuditService
	now           func() time.Time
}

func NewSessionReportUsecase(
	log *logrus.Logger,
	reportRepo repository.SessionReportRepository,
	patientRepo repository.PatientRepository,
	therapistRepo repository.TherapistRepository,
	sceneRepo repository.VRSceneRepository,
	audit service.AuditService,
) SessionReportUsecase {
	return &sessionReportUsecase{
		log:           log,
		reportRepo:    reportRepo,
		patientRepo:   patientRepo,
		therapistRepo: therapistRepo,
		sceneRepo:     sceneRepo,
		audit:         audit,
		now:           time.Now,
	}
}

// CreateReport appends a session report. Patient, therapist and scene must
// exist. Missing environment settings default to the scene's dials.
func (u *sessionReportUsecase) CreateReport(ctx context.Context, req *dto.CreateSessionReportRequest) (*dto.SessionReportResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	therapist, err := u.therapistRepo.FindByID(ctx, req.TherapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist %s: %+v", req.TherapistID, err)
		return nil, err
	}
	if therapist == nil {
		return nil, ErrTherapistNotFound
	}

	scene, err := u.sceneRepo.FindByID(ctx, req.SceneID)
	if err != nil {
		u.log.Warnf("Failed to find vr scene %s: %+v", req.SceneID, err)
		return nil, err
	}
	if scene == nil {
		return nil, ErrSceneNotFound
	}

	date := u.now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	settings := req.EnvironmentSettings
	if len(settings) == 0 {
		settings = scene.DefaultSettings()
	}

	report := &entity.SessionReport{
		ID:                  "SR-" + uuid.NewString(),
		PatientID:           patient.ID,
		TherapistID:         therapist.ID,
		SceneID:             scene.ID,
		Date:                date,
		Duration:            req.Duration,
		CompletionStatus:    entity.CompletionStatus(req.CompletionStatus),
		EnvironmentSettings: settings,
		ABAData:             converter.ABADataFromDTO(req.ABAData),
		BehavioralObservations: entity.BehavioralObservations{
			PositiveResponses:    req.BehavioralObservations.PositiveResponses,
			ChallengingBehaviors: req.BehavioralObservations.ChallengingBehaviors,
			EmotionalState:       req.BehavioralObservations.EmotionalState,
			EngagementLevel:      req.BehavioralObservations.EngagementLevel,
		},
		TherapistNotes:             req.TherapistNotes,
		NextSessionRecommendations: req.NextSessionRecommendations,
	}

	if err := u.reportRepo.Create(ctx, report); err != nil {
		u.log.Warnf("Failed to create session report: %+v", err)
		return nil, err
	}

	if err := recordAudit(ctx, u.audit, entity.AuditActionSessionReportCreate, map[string]any{
		"report_id":  report.ID,
		"patient_id": report.PatientID,
		"scene_id":   report.SceneID,
	}); err != nil {
		u.log.Warnf("Failed to record session report audit entry: %+v", err)
	}

	return converter.SessionReportToResponse(report), nil
}

func (u *sessionReportUsecase) GetReportsByPatient(ctx context.Context, patientID string) (*dto.SessionReportListResponse, error) {
	reports, err := u.reportRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find session reports for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.SessionReportListResponse{
		Reports: converter.SessionReportsToResponses(reports),
		Total:   len(reports),
	}, nil
}

func (u *sessionReportUsecase) GetReportsByTherapist(ctx context.Context, therapistID string) (*dto.SessionReportListResponse, error) {
	reports, err := u.reportRepo.FindByTherapistID(ctx, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find session reports for therapist %s: %+v", therapistID, err)
		return nil, err
	}

	return &dto.SessionReportListResponse{
		Reports: converter.SessionReportsToResponses(reports),
		Total:   len(reports),
	}, nil
}

// GetLatestReport returns nil when the patient has no reports
func (u *sessionReportUsecase) GetLatestReport(ctx context.Context, patientID string) (*dto.SessionReportResponse, error) {
	report, err := u.reportRepo.FindLatestByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find latest session report for patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.SessionReportToResponse(report), nil
}
