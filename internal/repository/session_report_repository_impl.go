package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type sessionReportRepository struct {
	store *StoreAdapter
}

func NewSessionReportRepository(store *StoreAdapter) domainRepo.SessionReportRepository {
	return &sessionReportRepository{store: store}
}

func (r *sessionReportRepository) Create(ctx context.Context, report *entity.SessionReport) error {
	if err := r.store.EnsureSeeded(ctx); err != nil {
		return err
	}
	defer r.store.lock(SessionReportsKey)()

	reports, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	report.ABAData.Recompute()
	reports = append(reports, *report)
	return r.store.Write(ctx, SessionReportsKey, reports)
}

// FindAll returns every report with PercentageIndependent recomputed from
// the stored trial counts.
func (r *sessionReportRepository) FindAll(ctx context.Context) ([]entity.SessionReport, error) {
	var reports []entity.SessionReport
	if err := r.store.readSeeded(ctx, SessionReportsKey, &reports); err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].ABAData.Recompute()
	}
	return reports, nil
}

func (r *sessionReportRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.SessionReport, error) {
	return r.filter(ctx, func(report *entity.SessionReport) bool {
		return report.PatientID == patientID
	})
}

func (r *sessionReportRepository) FindByTherapistID(ctx context.Context, therapistID string) ([]entity.SessionReport, error) {
	return r.filter(ctx, func(report *entity.SessionReport) bool {
		return report.TherapistID == therapistID
	})
}

// FindLatestByPatientID returns the patient's report with the latest date.
// On equal dates the first stored report wins.
func (r *sessionReportRepository) FindLatestByPatientID(ctx context.Context, patientID string) (*entity.SessionReport, error) {
	reports, err := r.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	var latest *entity.SessionReport
	for i := range reports {
		if latest == nil || reports[i].Date.After(latest.Date) {
			latest = &reports[i]
		}
	}
	return latest, nil
}

func (r *sessionReportRepository) filter(ctx context.Context, keep func(*entity.SessionReport) bool) ([]entity.SessionReport, error) {
	reports, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entity.SessionReport, 0)
	for i := range reports {
		if keep(&reports[i]) {
			matched = append(matched, reports[i])
		}
	}
	return matched, nil
}
