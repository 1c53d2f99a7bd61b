package settings

// ColorScheme reports the platform's colour-scheme preference.
type ColorScheme interface {
	PrefersDark() bool
}

// Presenter receives the resolved dark-mode flag.
type Presenter interface {
	SetDarkMode(dark bool)
}

// StaticScheme is a ColorScheme with a fixed answer.
type StaticScheme bool

func (s StaticScheme) PrefersDark() bool { return bool(s) }

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(dark bool)

func (f PresenterFunc) SetDarkMode(dark bool) { f(dark) }

// Resolve maps a theme to a dark-mode flag. System follows scheme; a nil
// scheme means light.
func Resolve(t Theme, scheme ColorScheme) bool {
	switch t {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return scheme != nil && scheme.PrefersDark()
	}
}
