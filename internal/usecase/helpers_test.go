package usecase

import (
	"context"
	"io"
	"sync"
	"testing"

	domainRepo "vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/infrastructure/seed"
	"vr-therapy-platform/internal/repository"
	"vr-therapy-platform/internal/service"

	"github.com/sirupsen/logrus"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
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

func (s *memoryStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fixture wires the repositories over the bundled seed data
type fixture struct {
	store      *memoryStore
	adapter    *repository.StoreAdapter
	therapists domainRepo.TherapistRepository
	patients   domainRepo.PatientRepository
	scenes     domainRepo.VRSceneRepository
	reports    domainRepo.SessionReportRepository
	onboarding domainRepo.OnboardingRepository
	audit      service.AuditService
	auth       AuthUsecase
	log        *logrus.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := testLogger()
	store := newMemoryStore()
	adapter := repository.NewStoreAdapter(store, seed.NewBundledSource(), log)

	f := &fixture{
		store:      store,
		adapter:    adapter,
		therapists: repository.NewTherapistRepository(adapter),
		patients:   repository.NewPatientRepository(adapter),
		scenes:     repository.NewVRSceneRepository(adapter),
		reports:    repository.NewSessionReportRepository(adapter),
		log:        log,
	}
	f.onboarding = repository.NewOnboardingRepository(adapter, f.patients)
	f.audit = service.NewAuditService(log, repository.NewAuditLogRepository(adapter))
	f.auth = NewAuthUsecase(log, f.therapists, f.patients)
	return f
}

func (f *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	logs, err := f.audit.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	actions := make([]string, len(logs))
	for i, l := range logs {
		actions[i] = l.Action
	}
	return actions
}
