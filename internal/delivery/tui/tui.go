package tui

import (
	"context"
	"errors"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/usecase"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user quits before finishing
var ErrCancelled = errors.New("onboarding cancelled")

// RunOnboardingTUI runs the interactive questionnaire for a patient and
// returns the saved result
func RunOnboardingTUI(ctx context.Context, onboarding usecase.OnboardingUsecase, patientID string) (*entity.OnboardingResult, error) {
	flow, err := onboarding.NewFlow(ctx, patientID)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(NewOnboardingModel(ctx, onboarding, flow), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(OnboardingModel)
	if !ok {
		return nil, errors.New("unexpected onboarding model")
	}
	if m.Cancelled() {
		return nil, ErrCancelled
	}
	if m.Result() == nil {
		return nil, m.Err()
	}
	return m.Result(), nil
}
