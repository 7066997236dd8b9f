package theme

import (
	"errors"
	"fmt"
)

// Mode is the user's display preference.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// DefaultMode is used until a saved preference has been read, and whenever
// none can be.
const DefaultMode = ModeDark

// ErrInvalidMode is returned by ParseMode for anything but "light" or "dark".
var ErrInvalidMode = errors.New("invalid theme mode")

var modes = [...]Mode{ModeLight, ModeDark}

// ParseMode accepts exactly the literal strings "light" and "dark".
// No trimming or case folding is applied, so a stored "Light" is rejected.
func ParseMode(raw string) (Mode, error) {
	m := Mode(raw)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
	return m, nil
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// Opposite returns the other mode. Invalid modes flip to the default's
// opposite, as if they were the default.
func (m Mode) Opposite() Mode {
	if m == ModeLight {
		return ModeDark
	}
	return ModeLight
}

func (m Mode) String() string {
	return string(m)
}
