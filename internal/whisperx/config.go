package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// BatchSize is passed through as --batch_size.
	BatchSize int
	// VADMethod selects the voice activity detection method ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken string
	// CUDAIndexURL is the PyTorch wheel index used when running on the GPU.
	CUDAIndexURL string
}

// WhisperX configuration constants. The model is fixed to the turbo tier.
const (
	DefaultModel      = "large-v3-turbo"
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	DefaultBatchSize  = 4
	ChunkSize         = "15"
	BeamSize          = "5"
	Temperature       = "0.0"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// UVXCommand launches WhisperX in an isolated, cached environment.
const UVXCommand = "uvx"
