package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type therapistRepository struct {
	store *StoreAdapter
}

func NewTherapistRepository(store *StoreAdapter) domainRepo.TherapistRepository {
	return &therapistRepository{store: store}
}

func (r *therapistRepository) FindAll(ctx context.Context) ([]entity.Therapist, error) {
	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dir.Therapists, nil
}

func (r *therapistRepository) FindByID(ctx context.Context, id string) (*entity.Therapist, error) {
	dir, err := r.store.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dir.Therapists {
		if dir.Therapists[i].ID == id {
			return &dir.Therapists[i], nil
		}
	}
	return nil, nil
}
