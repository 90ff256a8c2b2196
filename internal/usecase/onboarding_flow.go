package usecase

import (
	"errors"
	"time"

	"vr-therapy-platform/internal/domain/entity"
)

var (
	ErrNoQuestions          = errors.New("onboarding has no questions")
	ErrNoAnswerSelected     = errors.New("select an answer before continuing")
	ErrAtFirstQuestion      = errors.New("already at the first question")
	ErrUnknownOption        = errors.New("answer is not an option of the current question")
	ErrFlowCompleted        = errors.New("onboarding is already completed")
	ErrFlowNotCompleted     = errors.New("onboarding is not completed")
	ErrOnboardingNotStarted = errors.New("no onboarding in progress for this patient")
)

// OnboardingFlow walks a patient through the question catalog in order.
//
// Responses holds one finalized answer per question before Index. The
// candidate is the answer selected for the current question and not yet
// finalized. A flow is not safe for concurrent use.
type OnboardingFlow struct {
	patientID string
	questions []entity.OnboardingQuestion
	index     int
	candidate string
	responses []entity.OnboardingResponse
	result    *entity.OnboardingResult
	now       func() time.Time
}

func NewOnboardingFlow(patientID string, questions []entity.OnboardingQuestion) (*OnboardingFlow, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &OnboardingFlow{
		patientID: patientID,
		questions: questions,
		responses: make([]entity.OnboardingResponse, 0, len(questions)),
		now:       time.Now,
	}, nil
}

func (f *OnboardingFlow) PatientID() string {
	return f.patientID
}

func (f *OnboardingFlow) Index() int {
	return f.index
}

func (f *OnboardingFlow) Total() int {
	return len(f.questions)
}

// Current returns the question being answered, or nil once completed
func (f *OnboardingFlow) Current() *entity.OnboardingQuestion {
	if f.result != nil {
		return nil
	}
	return &f.questions[f.index]
}

func (f *OnboardingFlow) Candidate() string {
	return f.candidate
}

func (f *OnboardingFlow) Responses() []entity.OnboardingResponse {
	return append([]entity.OnboardingResponse(nil), f.responses...)
}

func (f *OnboardingFlow) Completed() bool {
	return f.result != nil
}

// Result returns the computed result once the flow has completed
func (f *OnboardingFlow) Result() *entity.OnboardingResult {
	return f.result
}

// SelectAnswer records a candidate answer for the current question
func (f *OnboardingFlow) SelectAnswer(value string) error {
	if f.result != nil {
		return ErrFlowCompleted
	}
	if _, ok := f.questions[f.index].Option(value); !ok {
		return ErrUnknownOption
	}
	f.candidate = value
	return nil
}

// Advance finalizes the candidate answer. On the last question it completes
// the flow and reports true.
func (f *OnboardingFlow) Advance() (bool, error) {
	if f.result != nil {
		return true, ErrFlowCompleted
	}
	if f.candidate == "" {
		return false, ErrNoAnswerSelected
	}

	question := &f.questions[f.index]
	option, ok := question.Option(f.candidate)
	if !ok {
		return false, ErrUnknownOption
	}
	f.responses = append(f.responses, entity.OnboardingResponse{
		QuestionID:    question.ID,
		SelectedValue: option.Value,
		Score:         option.Score,
	})

	if f.index < len(f.questions)-1 {
		f.index++
		f.candidate = ""
		return false, nil
	}

	f.complete()
	return true, nil
}

// Retreat steps back one question. The answer finalized there is withdrawn
// and becomes the candidate again.
func (f *OnboardingFlow) Retreat() error {
	if f.result != nil {
		return ErrFlowCompleted
	}
	if f.index == 0 {
		return ErrAtFirstQuestion
	}

	f.index--
	last := f.responses[len(f.responses)-1]
	f.responses = f.responses[:len(f.responses)-1]
	f.candidate = last.SelectedValue
	return nil
}

func (f *OnboardingFlow) complete() {
	f.result = &entity.OnboardingResult{
		PatientID:         f.patientID,
		Responses:         f.Responses(),
		TotalScore:        TotalScore(f.responses),
		RecommendedScenes: RecommendScenes(f.questions, f.responses),
		CompletedAt:       f.now().UTC(),
	}
}

// TotalScore sums the scores of the finalized responses
func TotalScore(responses []entity.OnboardingResponse) int {
	total := 0
	for _, r := range responses {
		total += r.Score
	}
	return total
}

// RecommendScenes collects the scenes each response points to. A scene keeps
// the position where it was first recommended and the list is capped at
// entity.MaxRecommendedScenes.
func RecommendScenes(questions []entity.OnboardingQuestion, responses []entity.OnboardingResponse) []string {
	byID := make(map[string]*entity.OnboardingQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	scenes := make([]string, 0, entity.MaxRecommendedScenes)
	seen := make(map[string]struct{})
	for _, r := range responses {
		question, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		for _, sceneID := range question.RecommendedScenes[r.SelectedValue] {
			if _, dup := seen[sceneID]; dup {
				continue
			}
			seen[sceneID] = struct{}{}
			scenes = append(scenes, sceneID)
		}
	}

	if len(scenes) > entity.MaxRecommendedScenes {
		scenes = scenes[:entity.MaxRecommendedScenes]
	}
	return scenes
}
