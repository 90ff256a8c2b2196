package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/delivery/http/middleware"
	"vr-therapy-platform/internal/service"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"
	"vr-therapy-platform/pkg/validator"

	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	log            *logrus.Logger
	patientUsecase usecase.PatientUsecase
	reportUsecase  usecase.SessionReportUsecase
	exportService  service.ReportExportService
	validator      *validator.CustomValidator
}

func NewPatientHandler(
	log *logrus.Logger,
	patientUsecase usecase.PatientUsecase,
	reportUsecase usecase.SessionReportUsecase,
	exportService service.ReportExportService,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		log:            log,
		patientUsecase: patientUsecase,
		reportUsecase:  reportUsecase,
		exportService:  exportService,
		validator:      validator,
	}
}

// GetMyPatients lists the patients assigned to the logged-in therapist
// @Summary List assigned patients
// @Tags Therapist
// @Produce json
// @Success 200 {object} response.Response
// @Router /therapist/patients [get]
func (h *PatientHandler) GetMyPatients(w http.ResponseWriter, r *http.Request) {
	therapistID, _ := middleware.GetSubjectFromContext(r.Context())

	patients, err := h.patientUsecase.GetPatientsByTherapist(r.Context(), therapistID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// EnrollPatient handles patient enrollment
// @Summary Enroll a patient
// @Tags Therapist
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /therapist/patients [post]
func (h *PatientHandler) EnrollPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Enroll(r.Context(), &req)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient enrolled successfully", patient)
}

// GetPatient returns an assigned patient, or the guardian's own patient
// @Summary Get patient
// @Tags Therapist
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapist/patients/{id} [get]
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// UpdatePatient applies a partial update to an assigned patient
// @Summary Update patient
// @Tags Therapist
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Router /therapist/patients/{id} [patch]
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// GetProgress returns the session summary of a patient
// @Summary Patient progress
// @Tags Therapist, Guardian
// @Produce json
// @Success 200 {object} response.Response
// @Router /therapist/patients/{id}/progress [get]
// @Router /guardian/progress [get]
func (h *PatientHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	progress, err := h.patientUsecase.GetProgress(r.Context(), patientID)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Progress retrieved successfully", progress)
}

// GetReports lists a patient's session reports
// @Summary Patient session reports
// @Tags Therapist, Guardian
// @Produce json
// @Success 200 {object} response.Response
// @Router /therapist/patients/{id}/reports [get]
// @Router /guardian/reports [get]
func (h *PatientHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	reports, err := h.reportUsecase.GetReportsByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get session reports")
		return
	}

	response.Success(w, http.StatusOK, "Session reports retrieved successfully", reports)
}

// ExportReports streams a patient's session history as an xlsx workbook
// @Summary Export session reports
// @Tags Therapist
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Patient ID"
// @Router /therapist/patients/{id}/reports/export [get]
func (h *PatientHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-sessions.xlsx"`, patientID))

	if err := h.exportService.ExportPatientReports(r.Context(), patientID, w); err != nil {
		h.log.Warnf("Failed to export session reports for %s: %+v", patientID, err)
		w.Header().Del("Content-Disposition")
		writePatientError(w, err)
	}
}
