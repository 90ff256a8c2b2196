package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"vr-therapy-platform/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionManager(f *fixture) *SessionManager {
	return NewSessionManager(f.log, f.store, f.auth, f.audit)
}

func TestSessionManager_StartsLoading(t *testing.T) {
	f := newFixture(t)
	m := newSessionManager(f)

	snap := m.Snapshot()
	assert.Equal(t, SessionLoading, snap.State)
	assert.True(t, snap.Loading)
	assert.False(t, snap.IsAuthenticated)

	select {
	case <-m.Ready():
		t.Fatal("ready before restore")
	default:
	}

	m.Restore(context.Background())
	<-m.Ready()
	assert.Equal(t, SessionUnauthenticated, m.Snapshot().State)
}

func TestSessionManager_LoginWaitsForRestore(t *testing.T) {
	f := newFixture(t)
	m := newSessionManager(f)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok, err := m.LoginTherapist(ctx, "T001", "01")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionManager_LogoutWaitsForRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := newSessionManager(f)
	first.Restore(ctx)
	_, ok, err := first.LoginTherapist(ctx, "T001", "01")
	require.NoError(t, err)
	require.True(t, ok)

	restarted := newSessionManager(f)
	logoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, restarted.Logout(logoutCtx), context.DeadlineExceeded)
	assert.True(t, f.store.has(SessionKey))

	done := make(chan error, 1)
	go func() { done <- restarted.Logout(ctx) }()
	restarted.Restore(ctx)
	require.NoError(t, <-done)

	snap := restarted.Snapshot()
	assert.Equal(t, SessionUnauthenticated, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, f.store.has(SessionKey))
}

func TestSessionManager_GuardianLoginLogout(t *testing.T) {
	f := newFixture(t)
	m := newSessionManager(f)
	ctx := context.Background()
	m.Restore(ctx)

	_, ok, err := m.LoginGuardian(ctx, "P001", "02")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, SessionUnauthenticated, m.Snapshot().State)
	assert.False(t, f.store.has(SessionKey))

	established, ok, err := m.LoginGuardian(ctx, "P001", "01")
	require.NoError(t, err)
	require.True(t, ok)

	snap := m.Snapshot()
	assert.Equal(t, established, snap)
	assert.Equal(t, SessionAuthenticatedGuardian, snap.State)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, entity.RoleGuardian, snap.Role)
	require.NotNil(t, snap.Patient)
	assert.Equal(t, "P001", snap.Patient.ID)
	assert.Equal(t, "P001", snap.User.PatientID)
	assert.NotEmpty(t, snap.SessionID)
	assert.True(t, f.store.has(SessionKey))

	require.NoError(t, m.Logout(ctx))
	snap = m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, entity.Role(""), snap.Role)
	assert.Nil(t, snap.User)
	assert.False(t, f.store.has(SessionKey))

	// idempotent
	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, SessionUnauthenticated, m.Snapshot().State)

	assert.Equal(t, []string{entity.AuditActionGuardianLogin, entity.AuditActionLogout}, f.auditActions(t))
}

func TestSessionManager_TherapistLoginReplacesSessionID(t *testing.T) {
	f := newFixture(t)
	m := newSessionManager(f)
	ctx := context.Background()
	m.Restore(ctx)

	first, ok, err := m.LoginTherapist(ctx, "T001", "01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SessionAuthenticatedTherapist, first.State)
	assert.Equal(t, "T001", first.User.ID)
	assert.Nil(t, first.Patient)

	second, ok, err := m.LoginTherapist(ctx, "T002", "02")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, second.SessionID, m.Snapshot().SessionID)
}

func TestSessionManager_ConcurrentLoginsReturnTheirOwnSession(t *testing.T) {
	f := newFixture(t)
	m := newSessionManager(f)
	ctx := context.Background()
	m.Restore(ctx)

	logins := []struct {
		role    entity.Role
		id      string
		phone   string
		subject string
	}{
		{entity.RoleTherapist, "T001", "01", "T001"},
		{entity.RoleTherapist, "T002", "02", "T002"},
		{entity.RoleGuardian, "P001", "01", "P001"},
		{entity.RoleGuardian, "P003", "03", "P003"},
	}

	const rounds = 10
	var wg sync.WaitGroup
	errs := make(chan error, rounds*len(logins))
	for i := 0; i < rounds; i++ {
		for _, login := range logins {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var (
					snap SessionSnapshot
					ok   bool
					err  error
				)
				if login.role == entity.RoleTherapist {
					snap, ok, err = m.LoginTherapist(ctx, login.id, login.phone)
				} else {
					snap, ok, err = m.LoginGuardian(ctx, login.id, login.phone)
				}
				switch {
				case err != nil:
					errs <- err
				case !ok:
					errs <- fmt.Errorf("login %s rejected", login.id)
				case snap.Role != login.role || snap.User.SubjectID() != login.subject:
					errs <- fmt.Errorf("login %s got session of %s", login.id, snap.User.SubjectID())
				}
			}()
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSessionManager_RestoresGuardianSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := newSessionManager(f)
	first.Restore(ctx)
	persisted, ok, err := first.LoginGuardian(ctx, "P001", "01")
	require.NoError(t, err)
	require.True(t, ok)

	restarted := newSessionManager(f)
	restarted.Restore(ctx)

	snap := restarted.Snapshot()
	assert.Equal(t, SessionAuthenticatedGuardian, snap.State)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, entity.RoleGuardian, snap.Role)
	assert.Equal(t, persisted.SessionID, snap.SessionID)
	assert.Equal(t, persisted.Patient, snap.Patient)
}

func TestSessionManager_CorruptSessionRestoresLoggedOut(t *testing.T) {
	cases := map[string][]byte{
		"invalid json":        []byte("{\"isAuthenticated\": tru"),
		"unknown role":        mustJSON(t, entity.AuthSession{IsAuthenticated: true, Role: "admin", User: &entity.SessionUser{}}),
		"guardian no patient": mustJSON(t, entity.AuthSession{IsAuthenticated: true, Role: entity.RoleGuardian, User: &entity.SessionUser{}}),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.store.data[SessionKey] = raw

			m := newSessionManager(f)
			m.Restore(context.Background())

			snap := m.Snapshot()
			assert.Equal(t, SessionUnauthenticated, snap.State)
			assert.False(t, snap.IsAuthenticated)
		})
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
