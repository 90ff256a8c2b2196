package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/infrastructure/seed"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Collection keys in the key-value store
const (
	UsersKey               = "vr_therapy_users"
	OnboardingQuestionsKey = "vr_therapy_onboarding_questions"
	VRScenesKey            = "vr_therapy_vr_scenes"
	SessionReportsKey      = "vr_therapy_session_reports"
	OnboardingResultsKey   = "vr_therapy_onboarding_results"
	AuditLogKey            = "vr_therapy_audit_log"
)

// CollectionKeys are the keys removed by ClearAll
var CollectionKeys = []string{
	UsersKey,
	OnboardingQuestionsKey,
	VRScenesKey,
	SessionReportsKey,
	OnboardingResultsKey,
}

// StoreAdapter presents the logical collections on top of a KeyValueStore.
//
// Every collection is rewritten whole on each mutation, so mutations take the
// collection's lock for the full read-modify-write. The users key doubles as
// the "seeded" marker and is written last during seeding.
type StoreAdapter struct {
	store  domainRepo.KeyValueStore
	source seed.Source
	log    *logrus.Logger

	seedMu sync.Mutex
	seeded atomic.Bool

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewStoreAdapter(store domainRepo.KeyValueStore, source seed.Source, log *logrus.Logger) *StoreAdapter {
	return &StoreAdapter{
		store:  store,
		source: source,
		log:    log,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Store exposes the underlying key-value store
func (a *StoreAdapter) Store() domainRepo.KeyValueStore {
	return a.store
}

// EnsureSeeded populates the store from the seed source whenever it finds the
// store empty. Once seeded, each call only checks that the users marker is
// still present, so a reset done by another process is noticed and reseeded.
func (a *StoreAdapter) EnsureSeeded(ctx context.Context) error {
	if a.seeded.Load() {
		_, ok, err := a.store.Get(ctx, UsersKey)
		if err != nil {
			return fmt.Errorf("check seed marker: %w", err)
		}
		if ok {
			return nil
		}
		a.log.Warn("Store was cleared outside this process, reseeding")
		a.seeded.Store(false)
	}

	a.seedMu.Lock()
	defer a.seedMu.Unlock()

	if a.seeded.Load() {
		return nil
	}

	_, ok, err := a.store.Get(ctx, UsersKey)
	if err != nil {
		return fmt.Errorf("check seed marker: %w", err)
	}
	if ok {
		a.seeded.Store(true)
		return nil
	}

	docs, err := a.fetchSeed(ctx)
	if err != nil {
		a.log.Warnf("Failed to load seed data: %+v", err)
		return err
	}

	writes := []struct {
		key   string
		value any
	}{
		{OnboardingQuestionsKey, docs.questions},
		{VRScenesKey, docs.scenes},
		{SessionReportsKey, docs.reports},
		{OnboardingResultsKey, []entity.OnboardingResult{}},
		{UsersKey, docs.users},
	}
	for _, w := range writes {
		if err := a.Write(ctx, w.key, w.value); err != nil {
			a.log.Warnf("Failed to write seed collection %s: %+v", w.key, err)
			return err
		}
	}

	a.seeded.Store(true)
	a.log.Infof("Seeded store: %d therapists, %d patients, %d questions, %d scenes, %d session reports",
		len(docs.users.Therapists), len(docs.users.Patients), len(docs.questions), len(docs.scenes), len(docs.reports))
	return nil
}

type seedDocuments struct {
	users     entity.UserDirectory
	questions []entity.OnboardingQuestion
	scenes    []entity.VRScene
	reports   []entity.SessionReport
}

// fetchSeed fetches and parses all seed documents concurrently; nothing is
// written unless every document parses.
func (a *StoreAdapter) fetchSeed(ctx context.Context) (*seedDocuments, error) {
	docs := &seedDocuments{}
	targets := map[seed.Resource]any{
		seed.ResourceUsers:               &docs.users,
		seed.ResourceOnboardingQuestions: &docs.questions,
		seed.ResourceVRScenes:            &docs.scenes,
		seed.ResourceSessionReports:      &docs.reports,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, resource := range seed.Resources {
		resource := resource
		target := targets[resource]
		g.Go(func() error {
			raw, err := a.source.Fetch(gctx, resource)
			if err != nil {
				return &domainRepo.DataInitializationError{Resource: string(resource), Err: err}
			}
			if err := json.Unmarshal(raw, target); err != nil {
				return &domainRepo.DataInitializationError{Resource: string(resource), Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range docs.reports {
		docs.reports[i].ABAData.Recompute()
	}
	return docs, nil
}

// Read decodes the document stored under key into out. It reports false when
// the key is absent and a StorageCorruptionError when the document is invalid.
func (a *StoreAdapter) Read(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &domainRepo.StorageCorruptionError{Key: key, Err: err}
	}
	return true, nil
}

// Write encodes value and stores it under key
func (a *StoreAdapter) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every collection so the next access reseeds the store
func (a *StoreAdapter) ClearAll(ctx context.Context) error {
	a.seedMu.Lock()
	defer a.seedMu.Unlock()

	if err := a.store.Delete(ctx, CollectionKeys...); err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	a.seeded.Store(false)
	a.log.Info("Cleared all collections")
	return nil
}

// lock acquires the write lock of one collection and returns its release
func (a *StoreAdapter) lock(key string) func() {
	a.locksMu.Lock()
	mu, ok := a.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		a.locks[key] = mu
	}
	a.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// readSeeded ensures the store is seeded and reads one collection. A missing
// collection decodes as its zero value.
func (a *StoreAdapter) readSeeded(ctx context.Context, key string, out any) error {
	if err := a.EnsureSeeded(ctx); err != nil {
		return err
	}
	_, err := a.Read(ctx, key, out)
	return err
}

func (a *StoreAdapter) readUsers(ctx context.Context) (*entity.UserDirectory, error) {
	var dir entity.UserDirectory
	if err := a.readSeeded(ctx, UsersKey, &dir); err != nil {
		return nil, err
	}
	return &dir, nil
}
