package settings

// Theme is the colour scheme selection
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes lists every theme.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// NotificationSettings are the seven notification toggles.
type NotificationSettings struct {
	Email          bool `json:"email"`
	Push           bool `json:"push"`
	TaskAssigned   bool `json:"taskAssigned"`
	TaskDue        bool `json:"taskDue"`
	ProjectUpdates bool `json:"projectUpdates"`
	Mentions       bool `json:"mentions"`
	WeeklyDigest   bool `json:"weeklyDigest"`
}

// DefaultNotificationSettings enables everything except the weekly digest.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Email:          true,
		Push:           true,
		TaskAssigned:   true,
		TaskDue:        true,
		ProjectUpdates: true,
		Mentions:       true,
	}
}

// NotificationUpdate names the toggles to change.
type NotificationUpdate struct {
	Email          *bool `json:"email,omitempty"`
	Push           *bool `json:"push,omitempty"`
	TaskAssigned   *bool `json:"taskAssigned,omitempty"`
	TaskDue        *bool `json:"taskDue,omitempty"`
	ProjectUpdates *bool `json:"projectUpdates,omitempty"`
	Mentions       *bool `json:"mentions,omitempty"`
	WeeklyDigest   *bool `json:"weeklyDigest,omitempty"`
}

// Apply merges u over n.
func (u NotificationUpdate) Apply(n NotificationSettings) NotificationSettings {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&n.Email, u.Email)
	set(&n.Push, u.Push)
	set(&n.TaskAssigned, u.TaskAssigned)
	set(&n.TaskDue, u.TaskDue)
	set(&n.ProjectUpdates, u.ProjectUpdates)
	set(&n.Mentions, u.Mentions)
	set(&n.WeeklyDigest, u.WeeklyDigest)
	return n
}

// Preferences are the user's locale and display choices. Theme mirrors the
// store's theme.
type Preferences struct {
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"dateFormat"`
	Theme      Theme  `json:"theme"`
}

// DefaultPreferences returns the preferences of a fresh session.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:   "en",
		Timezone:   "Asia/Manila",
		DateFormat: "MM/DD/YYYY",
		Theme:      ThemeSystem,
	}
}

// PreferencesUpdate names the preferences to change.
type PreferencesUpdate struct {
	Language   *string `json:"language,omitempty"`
	Timezone   *string `json:"timezone,omitempty"`
	DateFormat *string `json:"dateFormat,omitempty"`
	Theme      *Theme  `json:"theme,omitempty"`
}

// Snapshot is the full settings state.
type Snapshot struct {
	Theme         Theme                `json:"theme"`
	Notifications NotificationSettings `json:"notificationSettings"`
	Preferences   Preferences          `json:"userPreferences"`
	DarkMode      bool                 `json:"darkMode"`
}
