package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/delivery/http/middleware"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"
	"vr-therapy-platform/pkg/validator"

	"github.com/sirupsen/logrus"
)

type SessionReportHandler struct {
	log            *logrus.Logger
	reportUsecase  usecase.SessionReportUsecase
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewSessionReportHandler(
	log *logrus.Logger,
	reportUsecase usecase.SessionReportUsecase,
	patientUsecase usecase.PatientUsecase,
	validator *validator.CustomValidator,
) *SessionReportHandler {
	return &SessionReportHandler{
		log:            log,
		reportUsecase:  reportUsecase,
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// CreateReport records a therapy session for an assigned patient
// @Summary Create session report
// @Tags Therapist
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionReportRequest true "Create Session Report Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapist/reports [post]
func (h *SessionReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	therapistID, _ := middleware.GetSubjectFromContext(r.Context())

	var req dto.CreateSessionReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.TherapistID = therapistID

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.patientUsecase.EnsureAssigned(r.Context(), therapistID, req.PatientID); err != nil {
		writePatientError(w, err)
		return
	}

	report, err := h.reportUsecase.CreateReport(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSceneNotFound):
			response.NotFound(w, "VR scene not found")
		default:
			writePatientError(w, err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Session report created successfully", report)
}

// GetMyReports lists the reports written by the logged-in therapist
// @Summary List own session reports
// @Tags Therapist
// @Produce json
// @Success 200 {object} response.Response
// @Router /therapist/reports [get]
func (h *SessionReportHandler) GetMyReports(w http.ResponseWriter, r *http.Request) {
	therapistID, _ := middleware.GetSubjectFromContext(r.Context())

	reports, err := h.reportUsecase.GetReportsByTherapist(r.Context(), therapistID)
	if err != nil {
		response.InternalServerError(w, "Failed to get session reports")
		return
	}

	response.Success(w, http.StatusOK, "Session reports retrieved successfully", reports)
}

// GetLatestReport returns the most recent session of a patient
// @Summary Latest session report
// @Tags Therapist, Guardian
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapist/patients/{id}/reports/latest [get]
// @Router /guardian/reports/latest [get]
func (h *SessionReportHandler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	patientID, ok := patientScope(w, r, h.patientUsecase)
	if !ok {
		return
	}

	report, err := h.reportUsecase.GetLatestReport(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get session report")
		return
	}
	if report == nil {
		response.NotFound(w, "No session reports yet")
		return
	}

	response.Success(w, http.StatusOK, "Session report retrieved successfully", report)
}
