package transcript

import "fmt"

// Segment is one contiguous span of recognized speech. Times are seconds from
// the start of the audio; Text is kept exactly as the engine produced it.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the ordered output of a transcription run.
type Result struct {
	Segments []Segment
	// Language is the language code the engine detected or was told to use.
	Language string
}

// FormatLine renders a segment as a transcript line, including the trailing
// newline.
func FormatLine(seg Segment) string {
	return fmt.Sprintf("[%.2fs - %.2fs] %s\n", seg.Start, seg.End, seg.Text)
}
