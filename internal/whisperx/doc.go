// Package whisperx runs WhisperX speech recognition through uvx.
//
// Each call gets a private scratch directory for WhisperX's JSON output, which
// is parsed into transcript segments and then removed. The model variant is
// fixed; batch size, VAD method and the CUDA wheel index come from Config.
package whisperx
