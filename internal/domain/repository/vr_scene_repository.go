package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type VRSceneRepository interface {
	FindAll(ctx context.Context) ([]entity.VRScene, error)
	FindByID(ctx context.Context, id string) (*entity.VRScene, error)
	FindByCategory(ctx context.Context, category string) ([]entity.VRScene, error)
}
