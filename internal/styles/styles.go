package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Accent colors
	Blue   = lipgloss.Color("#3B82F6")
	Green  = lipgloss.Color("#10B981")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#06B6D4")

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")
	TextSubtle  = lipgloss.Color("#4B5563")

	// Background colors
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)
)

// Bar element styles (shared by header/footer)
var (
	Header = lipgloss.NewStyle().
		Background(BgSecondary)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	BarTitle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true)

	BarText = lipgloss.NewStyle().
		Foreground(TextMuted)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	// Mode chip background tracks the transport state: blue while
	// browsing or editing text, green while playing, yellow when paused.
	ModeChipBrowse = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(Blue).
			Padding(0, 1).
			Bold(true)

	ModeChipPlaying = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(Green).
			Padding(0, 1).
			Bold(true)

	ModeChipPaused = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(Yellow).
			Padding(0, 1).
			Bold(true)

	DirtyDot = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// Line list styles
var (
	TimeStamp = lipgloss.NewStyle().
			Foreground(TextMuted)

	PrefixPlaying = lipgloss.NewStyle().
			Foreground(Green)

	PrefixSelected = lipgloss.NewStyle().
			Foreground(Blue)

	LineIdle = lipgloss.NewStyle().
			Foreground(TextSubtle)

	LineSelected = lipgloss.NewStyle().
			Foreground(Blue).
			Reverse(true)

	PartLabel = lipgloss.NewStyle().
			Foreground(Cyan)
)

// Text edit styles
var (
	EditText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	CursorCell = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Blue)
)

// Keyframe editor styles
var (
	KeyframeNear = lipgloss.NewStyle().
			Foreground(Yellow)

	KeyframeFar = lipgloss.NewStyle().
			Foreground(TextSubtle)

	EditorBanner = lipgloss.NewStyle().
			Background(Cyan).
			Foreground(lipgloss.Color("#000000"))

	PanelHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary)
)

// Toast styles for status messages
var (
	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

// Modal styles
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Background(BgSecondary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true).
			MarginBottom(1)
)

// glowSpan is the number of cells over which the sweep glow fades out.
const glowSpan = 2.5

// SweepPlayed is the style for runes the sweep has already passed.
var SweepPlayed = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFFFFF")).
	Bold(true)

// SweepGlow returns the style for a rune dist cells ahead of the sweep
// position. Intensity falls off linearly: the rune at the sweep renders
// hot yellow and distant runes settle to a dim blue-gray.
func SweepGlow(dist float64) lipgloss.Style {
	intensity := 1.0 - dist/glowSpan
	if intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	c := RGB{
		R: 60 + 195*intensity,
		G: 60 + 195*intensity,
		B: 60 + 40*(1-intensity),
	}
	return lipgloss.NewStyle().Foreground(c.Hex()).Bold(true)
}

// RGB is a 24-bit color used by the sweep renderer.
type RGB struct {
	R, G, B float64
}

// Hex formats the color as a #rrggbb lipgloss color.
func (c RGB) Hex() lipgloss.Color {
	const hex = "0123456789abcdef"
	r, g, b := clampByte(c.R), clampByte(c.G), clampByte(c.B)
	return lipgloss.Color(string([]byte{'#',
		hex[r>>4], hex[r&0xf],
		hex[g>>4], hex[g&0xf],
		hex[b>>4], hex[b&0xf],
	}))
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
