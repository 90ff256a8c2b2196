package handler

import (
	"encoding/json"
	"net/http"

	"vr-therapy-platform/internal/converter"
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/jwt"
	"vr-therapy-platform/pkg/response"
	"vr-therapy-platform/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log        *logrus.Logger
	sessions   *usecase.SessionManager
	validator  *validator.CustomValidator
	jwtService *jwt.JWTService
}

func NewAuthHandler(
	log *logrus.Logger,
	sessions *usecase.SessionManager,
	validator *validator.CustomValidator,
	jwtService *jwt.JWTService,
) *AuthHandler {
	return &AuthHandler{
		log:        log,
		sessions:   sessions,
		validator:  validator,
		jwtService: jwtService,
	}
}

// LoginTherapist handles therapist login
// @Summary Therapist login
// @Description Login with therapist id, phone number and a 4-digit code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TherapistLoginRequest true "Therapist Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/therapist/login [post]
func (h *AuthHandler) LoginTherapist(w http.ResponseWriter, r *http.Request) {
	var req dto.TherapistLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, ok, err := h.sessions.LoginTherapist(r.Context(), req.TherapistID, req.Phone)
	if err != nil {
		h.log.Warnf("Failed to login therapist: %+v", err)
		response.InternalServerError(w, "Failed to login")
		return
	}
	if !ok {
		response.Unauthorized(w, "Invalid therapist ID or phone number")
		return
	}

	h.issueToken(w, session)
}

// LoginGuardian handles guardian login
// @Summary Guardian login
// @Description Login with the patient id, the guardian phone number and a 4-digit code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.GuardianLoginRequest true "Guardian Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/guardian/login [post]
func (h *AuthHandler) LoginGuardian(w http.ResponseWriter, r *http.Request) {
	var req dto.GuardianLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, ok, err := h.sessions.LoginGuardian(r.Context(), req.PatientID, req.Phone)
	if err != nil {
		h.log.Warnf("Failed to login guardian: %+v", err)
		response.InternalServerError(w, "Failed to login")
		return
	}
	if !ok {
		response.Unauthorized(w, "Invalid patient ID or phone number")
		return
	}

	h.issueToken(w, session)
}

// Logout ends the session and revokes every token issued for it
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.log.Warnf("Failed to logout: %+v", err)
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

// GetSession reports the session state for route guards. It needs no token
// and carries no user or patient details.
// @Summary Current session state
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Session retrieved successfully", SessionStateToResponse(h.sessions.Snapshot()))
}

// GetMe returns the full session of the token holder
// @Summary Current session with user details
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Session retrieved successfully", SessionToResponse(h.sessions.Snapshot()))
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, session usecase.SessionSnapshot) {
	token, _, err := h.jwtService.GenerateAccessToken(session.User.SubjectID(), string(session.Role), session.SessionID)
	if err != nil {
		h.log.Warnf("Failed to generate access token: %+v", err)
		response.InternalServerError(w, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.jwtService.GetAccessExpiry().Seconds()),
		Session:     SessionToResponse(session),
	})
}

// SessionToResponse converts a session snapshot including the user and the
// guardian's patient
func SessionToResponse(s usecase.SessionSnapshot) *dto.SessionResponse {
	resp := SessionStateToResponse(s)
	resp.User = converter.SessionUserToResponse(s.User)
	resp.Patient = converter.PatientToResponse(s.Patient)
	return resp
}

// SessionStateToResponse keeps only the route-guard fields; a logged-out
// session has a null role
func SessionStateToResponse(s usecase.SessionSnapshot) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		State:           s.State.String(),
		Loading:         s.Loading,
		IsAuthenticated: s.IsAuthenticated,
	}
	if s.Role != "" {
		role := string(s.Role)
		resp.Role = &role
	}
	return resp
}
