package summarizer

// Desired length bounds, in approximate words.
const (
	MinLength     = 50
	MaxLength     = 350
	DefaultLength = 150
)

// LengthStyle describes the summary style requested for a desired length.
func LengthStyle(length int) string {
	switch {
	case length < 100:
		return "very short, about 1-2 sentences"
	case length < 250:
		return "concise, like a short paragraph"
	default:
		return "detailed, a few paragraphs long"
	}
}

// LengthLabel returns the short display label for a desired length.
func LengthLabel(length int) string {
	switch {
	case length <= 125:
		return "Short"
	case length <= 275:
		return "Medium"
	default:
		return "Detailed"
	}
}

// ClampLength bounds length to [MinLength, MaxLength]; non-positive values
// select DefaultLength.
func ClampLength(length int) int {
	switch {
	case length <= 0:
		return DefaultLength
	case length < MinLength:
		return MinLength
	case length > MaxLength:
		return MaxLength
	default:
		return length
	}
}
