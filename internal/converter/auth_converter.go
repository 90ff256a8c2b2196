package converter

import (
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
)

func TherapistToResponse(therapist *entity.Therapist) *dto.TherapistResponse {
	if therapist == nil {
		return nil
	}
	return &dto.TherapistResponse{
		ID:             therapist.ID,
		Name:           therapist.Name,
		Phone:          therapist.Phone,
		Specialization: therapist.Specialization,
		Experience:     therapist.Experience,
		Email:          therapist.Email,
	}
}

func SessionUserToResponse(user *entity.SessionUser) *dto.SessionUserResponse {
	if user == nil {
		return nil
	}
	return &dto.SessionUserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Phone:          user.Phone,
		Role:           string(user.Role),
		Specialization: user.Specialization,
		Experience:     user.Experience,
		Email:          user.Email,
		PatientID:      user.PatientID,
	}
}
