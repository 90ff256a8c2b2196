package repository

import (
	"context"
	"strings"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type vrSceneRepository struct {
	store *StoreAdapter
}

func NewVRSceneRepository(store *StoreAdapter) domainRepo.VRSceneRepository {
	return &vrSceneRepository{store: store}
}

func (r *vrSceneRepository) FindAll(ctx context.Context) ([]entity.VRScene, error) {
	var scenes []entity.VRScene
	if err := r.store.readSeeded(ctx, VRScenesKey, &scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}

func (r *vrSceneRepository) FindByID(ctx context.Context, id string) (*entity.VRScene, error) {
	scenes, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range scenes {
		if scenes[i].ID == id {
			return &scenes[i], nil
		}
	}
	return nil, nil
}

func (r *vrSceneRepository) FindByCategory(ctx context.Context, category string) ([]entity.VRScene, error) {
	scenes, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entity.VRScene, 0)
	for _, scene := range scenes {
		if strings.EqualFold(scene.Category, category) {
			matched = append(matched, scene)
		}
	}
	return matched, nil
}
