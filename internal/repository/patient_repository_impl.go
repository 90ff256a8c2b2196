package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type patientRepository struct {
	store *StoreAdapter
}

func NewPatientRepository(store *StoreAdapter) domainRepo.PatientRepository {
	return &patientRepository{store: store}
}

// Create appends the patient. The caller assigns a unique id.
func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	if err := r.store.EnsureSeeded(ctx); err != nil {
		return err
	}
	defer r.store.lock(UsersKey)()

	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return err
	}
	dir.Patients = append(dir.Patients, *patient)
	return r.store.Write(ctx, UsersKey, dir)
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dir.Patients, nil
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dir.Patients {
		if dir.Patients[i].ID == id {
			return &dir.Patients[i], nil
		}
	}
	return nil, nil
}

func (r *patientRepository) FindByTherapistID(ctx context.Context, therapistID string) ([]entity.Patient, error) {
	return r.filter(ctx, func(p *entity.Patient) bool {
		return p.AssignedTherapist == therapistID
	})
}

func (r *patientRepository) FindByGuardianPhone(ctx context.Context, phone string) ([]entity.Patient, error) {
	return r.filter(ctx, func(p *entity.Patient) bool {
		return p.GuardianPhone == phone
	})
}

// Update merges patch into the stored patient and returns the merged record
func (r *patientRepository) Update(ctx context.Context, id string, patch entity.PatientPatch) (*entity.Patient, error) {
	if err := r.store.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	defer r.store.lock(UsersKey)()

	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range dir.Patients {
		if dir.Patients[i].ID != id {
			continue
		}
		dir.Patients[i].Apply(patch)
		if err := r.store.Write(ctx, UsersKey, dir); err != nil {
			return nil, err
		}
		merged := dir.Patients[i]
		return &merged, nil
	}
	return nil, domainRepo.ErrPatientNotFound
}

func (r *patientRepository) filter(ctx context.Context, keep func(*entity.Patient) bool) ([]entity.Patient, error) {
	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	patients := make([]entity.Patient, 0)
	for i := range dir.Patients {
		if keep(&dir.Patients[i]) {
			patients = append(patients, dir.Patients[i])
		}
	}
	return patients, nil
}
