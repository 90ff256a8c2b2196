package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionKey is the key-value store key the current session is persisted under
const SessionKey = "vr_therapy_auth"

// SessionState is the lifecycle state of the authentication session
type SessionState int

const (
	SessionLoading SessionState = iota
	SessionUnauthenticated
	SessionAuthenticatedTherapist
	SessionAuthenticatedGuardian
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthenticatedTherapist:
		return "authenticated_therapist"
	case SessionAuthenticatedGuardian:
		return "authenticated_guardian"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// SessionSnapshot is a consistent copy of the session for route decisions
type SessionSnapshot struct {
	State           SessionState
	Loading         bool
	IsAuthenticated bool
	Role            entity.Role
	SessionID       string
	User            *entity.SessionUser
	Patient         *entity.Patient
}

// SessionManager owns the single authentication session of this process.
//
// It starts in SessionLoading and leaves it once Restore has read the
// persisted session. Login calls block until then.
type SessionManager struct {
	log   *logrus.Logger
	store repository.KeyValueStore
	auth  AuthUsecase
	audit service.AuditService
	now   func() time.Time

	mu      sync.RWMutex
	state   SessionState
	session entity.AuthSession

	restoreOnce sync.Once
	ready       chan struct{}
}

func NewSessionManager(
	log *logrus.Logger,
	store repository.KeyValueStore,
	auth AuthUsecase,
	audit service.AuditService,
) *SessionManager {
	return &SessionManager{
		log:   log,
		store: store,
		auth:  auth,
		audit: audit,
		now:   time.Now,
		state: SessionLoading,
		ready: make(chan struct{}),
	}
}

// Ready is closed once Restore has completed
func (m *SessionManager) Ready() <-chan struct{} {
	return m.ready
}

// Restore loads the persisted session. An absent, unreadable or corrupt
// session leaves the manager unauthenticated. Only the first call has effect.
func (m *SessionManager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		defer close(m.ready)

		session, err := m.load(ctx)
		if err != nil {
			m.log.Warnf("Failed to restore session, continuing logged out: %+v", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if session == nil {
			m.state = SessionUnauthenticated
			m.session = entity.AuthSession{}
			return
		}
		m.session = *session
		m.state = stateOf(session.Role)
		m.log.Infof("Restored %s session %s", session.Role, session.SessionID)
	})
}

func (m *SessionManager) load(ctx context.Context) (*entity.AuthSession, error) {
	raw, ok, err := m.store.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var session entity.AuthSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, &repository.StorageCorruptionError{Key: SessionKey, Err: err}
	}
	if !session.IsAuthenticated || !session.Role.Valid() || session.User == nil {
		return nil, nil
	}
	if session.Role == entity.RoleGuardian && session.Patient == nil {
		return nil, &repository.StorageCorruptionError{Key: SessionKey, Err: fmt.Errorf("guardian session without patient")}
	}
	return &session, nil
}

// Snapshot returns the current session
func (m *SessionManager) Snapshot() SessionSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		State:           m.state,
		Loading:         m.state == SessionLoading,
		IsAuthenticated: m.session.IsAuthenticated,
		Role:            m.session.Role,
		SessionID:       m.session.SessionID,
		User:            m.session.User,
		Patient:         m.session.Patient,
	}
}

// LoginTherapist authenticates a therapist and makes them the current session.
// Bad credentials return false with the session unchanged. The returned
// snapshot is the session this call established, even if another login has
// replaced it since.
func (m *SessionManager) LoginTherapist(ctx context.Context, id, phone string) (SessionSnapshot, bool, error) {
	if err := m.awaitReady(ctx); err != nil {
		return SessionSnapshot{}, false, err
	}

	therapist, err := m.auth.AuthenticateTherapist(ctx, id, phone)
	if err != nil {
		return SessionSnapshot{}, false, err
	}
	if therapist == nil {
		m.log.Infof("Rejected therapist login for %s", id)
		return SessionSnapshot{}, false, nil
	}

	session := entity.AuthSession{
		SessionID:       uuid.NewString(),
		IsAuthenticated: true,
		Role:            entity.RoleTherapist,
		User:            entity.TherapistUser(therapist),
		IssuedAt:        m.now().UTC(),
	}
	established, err := m.establish(ctx, session)
	if err != nil {
		return SessionSnapshot{}, false, err
	}

	m.record(ctx, therapist.ID, entity.RoleTherapist, entity.AuditActionTherapistLogin, nil)
	return established, true, nil
}

// LoginGuardian authenticates a guardian by patient id and guardian phone
func (m *SessionManager) LoginGuardian(ctx context.Context, patientID, phone string) (SessionSnapshot, bool, error) {
	if err := m.awaitReady(ctx); err != nil {
		return SessionSnapshot{}, false, err
	}

	match, err := m.auth.AuthenticateGuardian(ctx, patientID, phone)
	if err != nil {
		return SessionSnapshot{}, false, err
	}
	if match == nil {
		m.log.Infof("Rejected guardian login for patient %s", patientID)
		return SessionSnapshot{}, false, nil
	}

	session := entity.AuthSession{
		SessionID:       uuid.NewString(),
		IsAuthenticated: true,
		Role:            entity.RoleGuardian,
		User:            entity.GuardianUser(match.Patient),
		Patient:         match.Patient,
		IssuedAt:        m.now().UTC(),
	}
	established, err := m.establish(ctx, session)
	if err != nil {
		return SessionSnapshot{}, false, err
	}

	m.record(ctx, match.Patient.ID, entity.RoleGuardian, entity.AuditActionGuardianLogin, nil)
	return established, true, nil
}

// Logout clears the session in memory and in storage. Logging out while
// logged out is a no-op. Like login, it waits for Restore to finish.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.awaitReady(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	previous := m.session
	m.session = entity.AuthSession{}
	m.state = SessionUnauthenticated
	m.mu.Unlock()

	if err := m.store.Delete(ctx, SessionKey); err != nil {
		m.log.Warnf("Failed to delete persisted session: %+v", err)
		return err
	}

	if previous.IsAuthenticated {
		m.record(ctx, previous.User.SubjectID(), previous.Role, entity.AuditActionLogout, map[string]any{
			"session_id": previous.SessionID,
		})
	}
	return nil
}

// establish persists session, makes it current and returns a snapshot of it
// taken under the same lock
func (m *SessionManager) establish(ctx context.Context, session entity.AuthSession) (SessionSnapshot, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return SessionSnapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, SessionKey, raw); err != nil {
		m.log.Warnf("Failed to persist session: %+v", err)
		return SessionSnapshot{}, err
	}
	m.session = session
	m.state = stateOf(session.Role)
	return m.snapshotLocked(), nil
}

func (m *SessionManager) awaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *SessionManager) record(ctx context.Context, actorID string, role entity.Role, action string, metadata map[string]any) {
	if m.audit == nil {
		return
	}
	if err := m.audit.Record(ctx, actorID, role, action, metadata); err != nil {
		m.log.Warnf("Failed to record %s audit entry: %+v", action, err)
	}
}

func stateOf(role entity.Role) SessionState {
	switch role {
	case entity.RoleTherapist:
		return SessionAuthenticatedTherapist
	case entity.RoleGuardian:
		return SessionAuthenticatedGuardian
	default:
		return SessionUnauthenticated
	}
}
