package core

// Tone is a semantic colour for a line of terminal text. Hosts map tones to
// their own palette (lipgloss styles, CSS classes).
type Tone uint8

const (
	ToneDefault Tone = iota
	ToneHeading
	ToneGood
	ToneInfo
	ToneWarn
	ToneDim
	ToneBanner
	ToneSelected
)

// String returns the tone name used on the wire.
func (t Tone) String() string {
	switch t {
	case ToneHeading:
		return "heading"
	case ToneGood:
		return "good"
	case ToneInfo:
		return "info"
	case ToneWarn:
		return "warn"
	case ToneDim:
		return "dim"
	case ToneBanner:
		return "banner"
	case ToneSelected:
		return "selected"
	default:
		return "default"
	}
}
