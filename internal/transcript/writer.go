package transcript

import (
	"io"
	"os"

	"vidtext/internal/services"
)

// Writer persists segments to a text file and mirrors each line to an echo
// stream.
type Writer struct {
	echo io.Writer
}

// NewWriter returns a Writer that echoes lines to echo. A nil echo disables
// mirroring.
func NewWriter(echo io.Writer) *Writer {
	if echo == nil {
		echo = io.Discard
	}
	return &Writer{echo: echo}
}

// Write creates or truncates outputPath and writes one line per segment in
// order. Each line reaches the file before it is echoed, so a failure partway
// through leaves the lines already echoed on disk.
func (w *Writer) Write(segments []Segment, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return services.Wrap(services.ErrOutput, "write", "open", outputPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = services.Wrap(services.ErrOutput, "write", "close", outputPath, closeErr)
		}
	}()

	for _, seg := range segments {
		line := FormatLine(seg)
		if _, err := io.WriteString(file, line); err != nil {
			return services.Wrap(services.ErrOutput, "write", "segment", outputPath, err)
		}
		if _, err := io.WriteString(w.echo, line); err != nil {
			return services.Wrap(services.ErrOutput, "write", "echo", "", err)
		}
	}
	return nil
}
