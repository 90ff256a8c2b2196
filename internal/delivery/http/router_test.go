package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vr-therapy-platform/config"
	"vr-therapy-platform/internal/delivery/http/handler"
	"vr-therapy-platform/internal/delivery/http/middleware"
	"vr-therapy-platform/internal/infrastructure/seed"
	"vr-therapy-platform/internal/repository"
	"vr-therapy-platform/internal/service"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/jwt"
	"vr-therapy-platform/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	handler  http.Handler
	sessions *usecase.SessionManager
	jwt      *jwt.JWTService
}

func newTestServer(t *testing.T, restore bool) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &memoryStore{data: make(map[string][]byte)}
	adapter := repository.NewStoreAdapter(store, seed.NewBundledSource(), log)

	therapistRepo := repository.NewTherapistRepository(adapter)
	patientRepo := repository.NewPatientRepository(adapter)
	sceneRepo := repository.NewVRSceneRepository(adapter)
	reportRepo := repository.NewSessionReportRepository(adapter)
	onboardingRepo := repository.NewOnboardingRepository(adapter, patientRepo)
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository(adapter))
	exportService := service.NewReportExportService(log, patientRepo, reportRepo)

	authUsecase := usecase.NewAuthUsecase(log, therapistRepo, patientRepo)
	sessions := usecase.NewSessionManager(log, store, authUsecase, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, therapistRepo, reportRepo, onboardingRepo, auditService)
	reportUsecase := usecase.NewSessionReportUsecase(log, reportRepo, patientRepo, therapistRepo, sceneRepo, auditService)
	sceneUsecase := usecase.NewVRSceneUsecase(log, sceneRepo)
	onboardingUsecase := usecase.NewOnboardingUsecase(log, onboardingRepo, patientRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditService)

	v := validator.NewValidator()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	router := NewRouter(
		handler.NewAuthHandler(log, sessions, v, jwtService),
		handler.NewPatientHandler(log, patientUsecase, reportUsecase, exportService, v),
		handler.NewSessionReportHandler(log, reportUsecase, patientUsecase, v),
		handler.NewVRSceneHandler(log, sceneUsecase),
		handler.NewOnboardingHandler(log, onboardingUsecase, patientUsecase, v),
		handler.NewAuditLogHandler(log, auditLogUsecase),
		middleware.NewAuthMiddleware(jwtService, sessions),
		middleware.NewCORSMiddleware(),
	)

	if restore {
		sessions.Restore(context.Background())
	}
	return &testServer{handler: router.Setup(), sessions: sessions, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *testServer) login(t *testing.T, path string, body map[string]string) string {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func (s *testServer) loginTherapist(t *testing.T) string {
	return s.login(t, "/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T001", "phone": "01", "otp": "1234"})
}

func (s *testServer) loginGuardian(t *testing.T, patientID, phone string) string {
	return s.login(t, "/api/v1/auth/guardian/login", map[string]string{"patient_id": patientID, "phone": phone, "otp": "0000"})
}

func TestRouter_HealthCheck(t *testing.T) {
	s := newTestServer(t, true)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ProtectedRoutesWaitForSessionRestore(t *testing.T) {
	s := newTestServer(t, false)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/scenes", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec, env := s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		Loading bool `json:"loading"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.True(t, session.Loading)
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t, true)

	tests := []struct {
		name string
		path string
		body map[string]string
		code int
	}{
		{"therapist", "/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T001", "phone": "01", "otp": "1234"}, http.StatusOK},
		{"therapist wrong phone", "/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T001", "phone": "02", "otp": "1234"}, http.StatusUnauthorized},
		{"therapist short code", "/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T001", "phone": "01", "otp": "12"}, http.StatusBadRequest},
		{"guardian", "/api/v1/auth/guardian/login", map[string]string{"patient_id": "P002", "phone": "02", "otp": "9876"}, http.StatusOK},
		{"guardian unknown patient", "/api/v1/auth/guardian/login", map[string]string{"patient_id": "P999", "phone": "02", "otp": "9876"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := s.do(t, http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_SessionReflectsLogin(t *testing.T) {
	s := newTestServer(t, true)

	_, env := s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	var session struct {
		State           string  `json:"state"`
		IsAuthenticated bool    `json:"is_authenticated"`
		Role            *string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.False(t, session.IsAuthenticated)
	assert.Nil(t, session.Role)

	s.loginGuardian(t, "P001", "01")

	_, env = s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.True(t, session.IsAuthenticated)
	require.NotNil(t, session.Role)
	assert.Equal(t, "guardian", *session.Role)
}

func TestRouter_PublicSessionHidesUserDetails(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginGuardian(t, "P001", "01")

	rec, env := s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.NotContains(t, fields, "user")
	assert.NotContains(t, fields, "patient")
	assert.NotContains(t, rec.Body.String(), "guardian_phone")

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Patient *struct {
			ID string `json:"id"`
		} `json:"patient"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.NotNil(t, me.Patient)
	assert.Equal(t, "P001", me.Patient.ID)
}

func TestRouter_ConcurrentLoginsGetTheirOwnToken(t *testing.T) {
	s := newTestServer(t, true)

	logins := []struct {
		path    string
		body    map[string]string
		subject string
	}{
		{"/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T001", "phone": "01", "otp": "1234"}, "T001"},
		{"/api/v1/auth/therapist/login", map[string]string{"therapist_id": "T002", "phone": "02", "otp": "1234"}, "T002"},
		{"/api/v1/auth/guardian/login", map[string]string{"patient_id": "P001", "phone": "01", "otp": "1234"}, "P001"},
		{"/api/v1/auth/guardian/login", map[string]string{"patient_id": "P003", "phone": "03", "otp": "1234"}, "P003"},
	}

	const rounds = 10
	type result struct {
		want string
		code int
		body []byte
	}
	results := make(chan result, rounds*len(logins))
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for _, login := range logins {
			wg.Add(1)
			go func() {
				defer wg.Done()
				raw, _ := json.Marshal(login.body)
				req := httptest.NewRequest(http.MethodPost, login.path, bytes.NewReader(raw))
				rec := httptest.NewRecorder()
				s.handler.ServeHTTP(rec, req)
				results <- result{want: login.subject, code: rec.Code, body: rec.Body.Bytes()}
			}()
		}
	}
	wg.Wait()
	close(results)

	for res := range results {
		require.Equal(t, http.StatusOK, res.code, string(res.body))

		var env envelope
		require.NoError(t, json.Unmarshal(res.body, &env))
		var data struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))

		claims, err := s.jwt.ValidateToken(data.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, res.want, claims.Subject)
	}
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/scenes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/scenes", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_NewLoginReplacesSession(t *testing.T) {
	s := newTestServer(t, true)
	first := s.loginTherapist(t)
	second := s.loginGuardian(t, "P001", "01")

	rec, _ := s.do(t, http.MethodGet, "/api/v1/therapist/patients", first, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/guardian/patient", second, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Scenes(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/scenes?category=social", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Total)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/scenes/vr-calm-room", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/scenes/vr-moon", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_TherapistPatients(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/therapist/patients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Total)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/therapist/patients/P001", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/therapist/patients/P003", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/therapist/patients/P999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/guardian/patient", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_EnrollAndUpdatePatient(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/therapist/patients", token, map[string]any{
		"name":           "Ayu Lestari",
		"date_of_birth":  "2019-03-14",
		"guardian_name":  "Dewi Lestari",
		"guardian_phone": "0812",
		"diagnosis":      "ASD Level 1",
		"sensory_profile": map[string]any{
			"sound_sensitivity":   "high",
			"visual_sensitivity":  "medium",
			"tactile_sensitivity": "low",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var patient struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		AssignedTherapist string `json:"assigned_therapist"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &patient))
	assert.Equal(t, "T001", patient.AssignedTherapist)

	rec, env = s.do(t, http.MethodPatch, "/api/v1/therapist/patients/"+patient.ID, token, map[string]any{
		"name": "Ayu L.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &patient))
	assert.Equal(t, "Ayu L.", patient.Name)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/therapist/patients", token, map[string]any{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CreateReport(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	report := map[string]any{
		"patient_id":        "P002",
		"scene_id":          "vr-playground",
		"duration":          20,
		"completion_status": "completed",
		"aba_data": map[string]any{
			"target_behavior":    "turn taking",
			"measurement_type":   "frequency",
			"prompt_level":       "verbal",
			"independent_trials": 3,
			"prompted_trials":    1,
		},
	}

	rec, env := s.do(t, http.MethodPost, "/api/v1/therapist/reports", token, report)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		TherapistID string `json:"therapist_id"`
		ABAData     struct {
			PercentageIndependent int `json:"percentage_independent"`
		} `json:"aba_data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "T001", created.TherapistID)
	assert.Equal(t, 75, created.ABAData.PercentageIndependent)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/therapist/patients/P002/reports/latest", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	report["patient_id"] = "P003"
	rec, _ = s.do(t, http.MethodPost, "/api/v1/therapist/reports", token, report)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	report["patient_id"] = "P002"
	report["scene_id"] = "vr-moon"
	rec, _ = s.do(t, http.MethodPost, "/api/v1/therapist/reports", token, report)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ExportReports(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/therapist/patients/P001/reports/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "P001-sessions.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestRouter_GuardianOnboarding(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginGuardian(t, "P002", "02")

	rec, _ := s.do(t, http.MethodGet, "/api/v1/guardian/onboarding", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/guardian/onboarding/start", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/guardian/onboarding/next", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/guardian/onboarding/back", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var progress struct {
		Index     int  `json:"index"`
		Total     int  `json:"total"`
		Completed bool `json:"completed"`
		Question  *struct {
			Options []struct {
				Value string `json:"value"`
			} `json:"options"`
		} `json:"question"`
	}

	for i := 0; i < 8; i++ {
		_, env := s.do(t, http.MethodGet, "/api/v1/guardian/onboarding", token, nil)
		require.NoError(t, json.Unmarshal(env.Data, &progress))
		require.Equal(t, i, progress.Index)
		require.NotNil(t, progress.Question)

		rec, _ = s.do(t, http.MethodPost, "/api/v1/guardian/onboarding/answer", token, map[string]string{
			"value": progress.Question.Options[0].Value,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var env2 envelope
		rec, env2 = s.do(t, http.MethodPost, "/api/v1/guardian/onboarding/next", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, fmt.Sprintf("question %d: %s", i, rec.Body.String()))
		progress.Question = nil
		require.NoError(t, json.Unmarshal(env2.Data, &progress))
	}
	assert.True(t, progress.Completed)
	assert.Equal(t, 8, progress.Total)

	rec, env := s.do(t, http.MethodGet, "/api/v1/guardian/onboarding/result", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		PatientID  string `json:"patient_id"`
		TotalScore int    `json:"total_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "P002", result.PatientID)

	_, env = s.do(t, http.MethodGet, "/api/v1/guardian/patient", token, nil)
	var patient struct {
		HasCompletedOnboarding bool `json:"has_completed_onboarding"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &patient))
	assert.True(t, patient.HasCompletedOnboarding)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/guardian/onboarding", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuditLogs(t *testing.T) {
	s := newTestServer(t, true)
	token := s.loginTherapist(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/audit-logs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	assert.Equal(t, 1, logs.Total)
}
