package theme

// Colors maps each semantic color role to a #RRGGBB value.
//
// Screens should depend on these roles rather than on literal colors so a
// mode switch restyles them without further changes.
type Colors struct {
	Background    string
	Surface       string
	Card          string
	CardSecondary string
	Text          string
	TextSecondary string
	Primary       string
	Border        string
	Success       string
	Error         string
	Icon          string
}

// Theme is the palette for one Mode. It is a plain value and is only ever
// produced by For.
type Theme struct {
	Mode   Mode
	Colors Colors
}

// Role is a single named entry of a palette.
type Role struct {
	Name string
	Hex  string
}

var palettes = map[Mode]Colors{
	ModeDark: {
		Background:    "#0B0B12",
		Surface:       "#14141E",
		Card:          "#1C1C2A",
		CardSecondary: "#252536",
		Text:          "#FFFFFF",
		TextSecondary: "#9C9CB4",
		Primary:       "#7B61FF",
		Border:        "#2D2D42",
		Success:       "#1FCB8B",
		Error:         "#FF4D67",
		Icon:          "#C9C9D9",
	},
	ModeLight: {
		Background:    "#F5F6FA",
		Surface:       "#FFFFFF",
		Card:          "#FFFFFF",
		CardSecondary: "#EEF0F6",
		Text:          "#0B0B12",
		TextSecondary: "#6A6A80",
		Primary:       "#5B3FFF",
		Border:        "#DFE2EC",
		Success:       "#0FA36B",
		Error:         "#E0314B",
		Icon:          "#3A3A4C",
	},
}

// For derives the theme of a mode. Invalid modes yield the default mode's
// theme, so callers never see a partial palette.
func For(mode Mode) Theme {
	if !mode.Valid() {
		mode = DefaultMode
	}
	return Theme{Mode: mode, Colors: palettes[mode]}
}

// Roles lists the palette in a stable order, using the role names the
// screens refer to.
func (c Colors) Roles() []Role {
	return []Role{
		{Name: "background", Hex: c.Background},
		{Name: "surface", Hex: c.Surface},
		{Name: "card", Hex: c.Card},
		{Name: "cardSecondary", Hex: c.CardSecondary},
		{Name: "text", Hex: c.Text},
		{Name: "textSecondary", Hex: c.TextSecondary},
		{Name: "primary", Hex: c.Primary},
		{Name: "border", Hex: c.Border},
		{Name: "success", Hex: c.Success},
		{Name: "error", Hex: c.Error},
		{Name: "icon", Hex: c.Icon},
	}
}
