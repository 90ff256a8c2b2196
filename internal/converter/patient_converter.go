package converter

import (
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	goals := patient.TherapyGoals
	if goals == nil {
		goals = []string{}
	}

	return &dto.PatientResponse{
		ID:                     patient.ID,
		Name:                   patient.Name,
		DateOfBirth:            patient.DateOfBirth,
		Age:                    patient.Age,
		GuardianName:           patient.GuardianName,
		GuardianPhone:          patient.GuardianPhone,
		GuardianEmail:          patient.GuardianEmail,
		Diagnosis:              patient.Diagnosis,
		SecondaryDiagnosis:     patient.SecondaryDiagnosis,
		AssignedTherapist:      patient.AssignedTherapist,
		EnrollmentDate:         patient.EnrollmentDate,
		TherapyGoals:           goals,
		SensoryProfile:         SensoryProfileToDTO(patient.SensoryProfile),
		HasCompletedOnboarding: patient.HasCompletedOnboarding,
	}
}

// PatientsToResponses converts a slice of Patient entities to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

func SensoryProfileToDTO(profile entity.SensoryProfile) dto.SensoryProfileDTO {
	environments := profile.PreferredEnvironments
	if environments == nil {
		environments = []string{}
	}
	return dto.SensoryProfileDTO{
		SoundSensitivity:      string(profile.SoundSensitivity),
		VisualSensitivity:     string(profile.VisualSensitivity),
		TactileSensitivity:    string(profile.TactileSensitivity),
		PreferredEnvironments: environments,
	}
}

func SensoryProfileFromDTO(profile dto.SensoryProfileDTO) entity.SensoryProfile {
	return entity.SensoryProfile{
		SoundSensitivity:      entity.SensitivityLevel(profile.SoundSensitivity),
		VisualSensitivity:     entity.SensitivityLevel(profile.VisualSensitivity),
		TactileSensitivity:    entity.SensitivityLevel(profile.TactileSensitivity),
		PreferredEnvironments: profile.PreferredEnvironments,
	}
}

// UpdatePatientRequestToPatch maps the present fields of an update request
func UpdatePatientRequestToPatch(req *dto.UpdatePatientRequest) entity.PatientPatch {
	patch := entity.PatientPatch{
		Name:               req.Name,
		DateOfBirth:        req.DateOfBirth,
		GuardianName:       req.GuardianName,
		GuardianPhone:      req.GuardianPhone,
		GuardianEmail:      req.GuardianEmail,
		Diagnosis:          req.Diagnosis,
		SecondaryDiagnosis: req.SecondaryDiagnosis,
		AssignedTherapist:  req.AssignedTherapist,
		TherapyGoals:       req.TherapyGoals,
	}
	if req.SensoryProfile != nil {
		profile := SensoryProfileFromDTO(*req.SensoryProfile)
		patch.SensoryProfile = &profile
	}
	return patch
}
