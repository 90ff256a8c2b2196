package handler

import (
	"net/http"

	"vr-therapy-platform/internal/delivery/http/middleware"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"

	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	log          *logrus.Logger
	auditUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(log *logrus.Logger, auditUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		log:          log,
		auditUsecase: auditUsecase,
	}
}

// GetMyAuditLogs lists the audit trail of the logged-in user
// @Summary Own audit trail
// @Tags Audit
// @Produce json
// @Success 200 {object} response.Response
// @Router /audit-logs [get]
func (h *AuditLogHandler) GetMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetSubjectFromContext(r.Context())

	logs, err := h.auditUsecase.GetAuditLogs(r.Context(), actorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
