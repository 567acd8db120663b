package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// FFmpegStub writes a placeholder WAV to its last argument, which is where
// ffmpeg puts the output path.
const FFmpegStub = `for a; do last=$a; done
printf 'RIFF' > "$last"
`

// FFmpegMissingStreamStub fails the way ffmpeg does for a video without audio.
const FFmpegMissingStreamStub = `echo 'Output file #0 does not contain any stream' >&2
exit 1
`

// WhisperXStub mimics "uvx whisperx" using shell builtins only: it writes a three-segment JSON result
// named after the audio file into --output_dir.
const WhisperXStub = `src=""
out=""
prev=""
for a; do
  case "$prev" in
    whisperx) src=$a ;;
    --output_dir) out=$a ;;
  esac
  prev=$a
done
base=${src##*/}
stem=${base%.wav}
printf '%s\n' '{"segments": [' \
  '{"start": 0.0, "end": 2.5, "text": "Hello"},' \
  '{"start": 2.5, "end": 5.0, "text": "world"},' \
  '{"start": 5.0, "end": 7.1, "text": "goodbye"}' \
  '], "language": "en"}' > "$out/$stem.json"
`

// WriteExecutable writes a /bin/sh script named name into dir and returns its
// path.
func WriteExecutable(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if body == "" {
		body = "exit 0\n"
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}
