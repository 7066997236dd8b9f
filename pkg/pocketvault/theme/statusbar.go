package theme

// StatusBarStyle selects the color of the host status bar's content.
type StatusBarStyle string

const (
	// StatusBarLightContent draws light glyphs, for dark backgrounds.
	StatusBarLightContent StatusBarStyle = "light-content"
	// StatusBarDarkContent draws dark glyphs, for light backgrounds.
	StatusBarDarkContent StatusBarStyle = "dark-content"
)

// StatusBar is the host platform's status bar control.
type StatusBar interface {
	SetStyle(StatusBarStyle)
}

// StatusBarFunc adapts a plain function to StatusBar.
type StatusBarFunc func(StatusBarStyle)

func (f StatusBarFunc) SetStyle(style StatusBarStyle) {
	f(style)
}

// StyleFor returns the status bar style that stays legible on mode's
// background.
func StyleFor(mode Mode) StatusBarStyle {
	if mode == ModeLight {
		return StatusBarDarkContent
	}
	return StatusBarLightContent
}
