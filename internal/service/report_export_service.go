package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	sessionsSheet = "Sessions"
	summarySheet  = "Summary"
)

// SessionExportHeader is the header row of the sessions sheet
var SessionExportHeader = []string{
	"Report ID",
	"Date",
	"Scene",
	"Therapist",
	"Duration (min)",
	"Completion",
	"Target Behavior",
	"Measurement",
	"Baseline",
	"Achieved",
	"Unit",
	"Independent Trials",
	"Prompted Trials",
	"% Independent",
	"Positive Responses",
	"Challenging Behaviors",
	"Emotional State",
	"Engagement",
	"Therapist Notes",
	"Next Session",
}

// ReportExportService writes a patient's session history as a spreadsheet
type ReportExportService interface {
	ExportPatientReports(ctx context.Context, patientID string, w io.Writer) error
}

type reportExportService struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	reportRepo  repository.SessionReportRepository
}

func NewReportExportService(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	reportRepo repository.SessionReportRepository,
) ReportExportService {
	return &reportExportService{
		log:         log,
		patientRepo: patientRepo,
		reportRepo:  reportRepo,
	}
}

// ExportPatientReports writes an xlsx workbook with one row per session,
// oldest first, and a summary sheet
func (s *reportExportService) ExportPatientReports(ctx context.Context, patientID string, w io.Writer) error {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return repository.ErrPatientNotFound
	}

	reports, err := s.reportRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		s.log.Warnf("Failed to find session reports for patient %s: %+v", patientID, err)
		return err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date.Before(reports[j].Date)
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSessionsSheet(f, reports); err != nil {
		return err
	}
	if err := writeSummarySheet(f, patient, reports); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		s.log.Warnf("Failed to write export for patient %s: %+v", patientID, err)
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.log.Infof("Exported %d session reports for patient %s", len(reports), patientID)
	return nil
}

func writeSessionsSheet(f *excelize.File, reports []entity.SessionReport) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(SessionExportHeader))
	for i, h := range SessionExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sessionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(SessionExportHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sessionsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(sessionsSheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, r := range reports {
		row := []any{
			r.ID,
			r.Date.Format("2006-01-02 15:04"),
			r.SceneID,
			r.TherapistID,
			r.Duration,
			string(r.CompletionStatus),
			r.ABAData.TargetBehavior,
			string(r.ABAData.MeasurementType),
			r.ABAData.Baseline,
			r.ABAData.Achieved,
			r.ABAData.Unit,
			r.ABAData.IndependentTrials,
			r.ABAData.PromptedTrials,
			r.ABAData.PercentageIndependent,
			r.BehavioralObservations.PositiveResponses,
			r.BehavioralObservations.ChallengingBehaviors,
			r.BehavioralObservations.EmotionalState,
			r.BehavioralObservations.EngagementLevel,
			r.TherapistNotes,
			r.NextSessionRecommendations,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.ID, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, patient *entity.Patient, reports []entity.SessionReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	completed := 0
	for _, r := range reports {
		if r.CompletionStatus == entity.CompletionCompleted {
			completed++
		}
	}

	rows := [][]any{
		{"Patient ID", patient.ID},
		{"Patient", patient.Name},
		{"Diagnosis", patient.Diagnosis},
		{"Assigned Therapist", patient.AssignedTherapist},
		{"Total Sessions", len(reports)},
		{"Completed Sessions", completed},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}
