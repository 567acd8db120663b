package config

const (
	defaultConfigPath   = "~/.config/vidtext/config.toml"
	projectConfigName   = "vidtext.toml"
	defaultDevice       = DeviceAuto
	defaultBatchSize    = 4
	defaultVADMethod    = VADMethodSilero
	defaultCUDAIndexURL = "https://download.pytorch.org/whl/cu128"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Device preferences accepted in transcription.device.
const (
	DeviceAuto = "auto"
	DeviceCPU  = "cpu"
)

// VAD methods accepted in transcription.vad_method.
const (
	VADMethodSilero   = "silero"
	VADMethodPyannote = "pyannote"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transcription: Transcription{
			Device:       defaultDevice,
			BatchSize:    defaultBatchSize,
			VADMethod:    defaultVADMethod,
			CUDAIndexURL: defaultCUDAIndexURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
