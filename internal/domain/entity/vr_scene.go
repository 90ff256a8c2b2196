package entity

// MeasurementType is the ABA data collection method for a scene
type MeasurementType string

const (
	MeasurementFrequency    MeasurementType = "frequency"
	MeasurementDuration     MeasurementType = "duration"
	MeasurementLatency      MeasurementType = "latency"
	MeasurementTaskAnalysis MeasurementType = "task_analysis"
)

// ABAParameters describes what a scene measures and which prompts it may use
type ABAParameters struct {
	TargetBehavior  string          `json:"targetBehavior"`
	MeasurementType MeasurementType `json:"measurementType"`
	PromptLevels    []string        `json:"promptLevels"`
}

// SettingType distinguishes numeric range dials from option lists
type SettingType string

const (
	SettingTypeRange  SettingType = "range"
	SettingTypeSelect SettingType = "select"
)

// EnvironmentSetting is a configurable dial: either a bounded numeric range
// (Min, Max, Unit) or an enumerated set of Options. Default holds a number for
// ranges and a string for option lists.
type EnvironmentSetting struct {
	Type    SettingType `json:"type"`
	Label   string      `json:"label,omitempty"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Unit    string      `json:"unit,omitempty"`
	Options []string    `json:"options,omitempty"`
	Default any         `json:"default"`
}

// IsRange reports whether the setting is a numeric range dial
func (s EnvironmentSetting) IsRange() bool {
	return s.Type == SettingTypeRange
}

// VRScene is a read-only catalog entry for a VR therapy activity
type VRScene struct {
	ID                  string                        `json:"id"`
	Name                string                        `json:"name"`
	Description         string                        `json:"description"`
	Category            string                        `json:"category"`
	Difficulty          string                        `json:"difficulty"`
	Duration            int                           `json:"duration"`
	TargetSkills        []string                      `json:"targetSkills"`
	ABAParameters       ABAParameters                 `json:"abaParameters"`
	EnvironmentSettings map[string]EnvironmentSetting `json:"environmentSettings"`
	Preferences         map[string]EnvironmentSetting `json:"preferences"`
}

// DefaultSettings resolves every environment and preference dial to its
// default value. Preferences win when both maps name the same dial.
func (s *VRScene) DefaultSettings() map[string]any {
	settings := make(map[string]any, len(s.EnvironmentSettings)+len(s.Preferences))
	for name, setting := range s.EnvironmentSettings {
		settings[name] = setting.Default
	}
	for name, setting := range s.Preferences {
		settings[name] = setting.Default
	}
	return settings
}
