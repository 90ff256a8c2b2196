package handler

import (
	"errors"
	"net/http"

	"vr-therapy-platform/internal/delivery/http/middleware"
	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"

	"github.com/gorilla/mux"
)

// patientScope resolves the patient a request acts on. Guardians always act
// on their own patient; therapists name one in the path and must be assigned
// to it.
func patientScope(w http.ResponseWriter, r *http.Request, patients usecase.PatientUsecase) (string, bool) {
	subject, _ := middleware.GetSubjectFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	if role == entity.RoleGuardian {
		return subject, true
	}

	patientID := mux.Vars(r)["id"]
	if patientID == "" {
		response.BadRequest(w, "Patient ID is required")
		return "", false
	}

	if err := patients.EnsureAssigned(r.Context(), subject, patientID); err != nil {
		writePatientError(w, err)
		return "", false
	}
	return patientID, true
}

func writePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrPatientNotAssigned):
		response.Forbidden(w, "Patient is not assigned to you")
	case errors.Is(err, usecase.ErrTherapistNotFound):
		response.Error(w, http.StatusUnprocessableEntity, "Assigned therapist does not exist", nil)
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process patient")
	}
}
