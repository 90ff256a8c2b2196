package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type TherapistRepository interface {
	FindAll(ctx context.Context) ([]entity.Therapist, error)
	FindByID(ctx context.Context, id string) (*entity.Therapist, error)
}
