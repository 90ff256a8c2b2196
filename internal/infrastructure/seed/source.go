// Package seed provides the initial documents the store is populated with on
// first use.
package seed

import "context"

// Resource names one seed document
type Resource string

const (
	ResourceUsers               Resource = "users"
	ResourceOnboardingQuestions Resource = "onboarding_questions"
	ResourceVRScenes            Resource = "vr_scenes"
	ResourceSessionReports      Resource = "session_reports"
)

// Resources lists every seed document
var Resources = []Resource{
	ResourceUsers,
	ResourceOnboardingQuestions,
	ResourceVRScenes,
	ResourceSessionReports,
}

// FileName is the document's name inside a seed bundle
func (r Resource) FileName() string {
	return string(r) + ".json"
}

// Source fetches raw seed documents
type Source interface {
	Fetch(ctx context.Context, resource Resource) ([]byte, error)
}
