package usecase

import (
	"context"

	"vr-therapy-platform/internal/converter"
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type VRSceneUsecase interface {
	GetScenes(ctx context.Context, category string) (*dto.VRSceneListResponse, error)
	GetScene(ctx context.Context, id string) (*dto.VRSceneResponse, error)
}

type vrSceneUsecase struct {
	log       *logrus.Logger
	sceneRepo repository.VRSceneRepository
}

func NewVRSceneUsecase(log *logrus.Logger, sceneRepo repository.VRSceneRepository) VRSceneUsecase {
	return &vrSceneUsecase{
		log:       log,
		sceneRepo: sceneRepo,
	}
}

// GetScenes lists the catalog, narrowed to one category when given
func (u *vrSceneUsecase) GetScenes(ctx context.Context, category string) (*dto.VRSceneListResponse, error) {
	var (
		scenes []entity.VRScene
		err    error
	)
	if category != "" {
		scenes, err = u.sceneRepo.FindByCategory(ctx, category)
	} else {
		scenes, err = u.sceneRepo.FindAll(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to find vr scenes: %+v", err)
		return nil, err
	}

	return &dto.VRSceneListResponse{
		Scenes: converter.VRScenesToResponses(scenes),
		Total:  len(scenes),
	}, nil
}

func (u *vrSceneUsecase) GetScene(ctx context.Context, id string) (*dto.VRSceneResponse, error) {
	scene, err := u.sceneRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find vr scene %s: %+v", id, err)
		return nil, err
	}
	if scene == nil {
		return nil, ErrSceneNotFound
	}
	return converter.VRSceneToResponse(scene), nil
}
