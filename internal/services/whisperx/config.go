package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the model name (e.g., "small", "large-v3", "base.en").
	Model string
	// UVX is the uvx executable used to launch WhisperX.
	UVX string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// VADMethod selects the voice activity detection method ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken     string
	BatchSize   int
	BeamSize    int
	ComputeType string
	// ScratchDir is where per-call output directories are created. Empty
	// means the system temp directory.
	ScratchDir string
}

// WhisperX configuration constants.
const (
	DefaultModel      = "small"
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
	Package           = "whisperx"
)

// UVXCommand is the default launcher for WhisperX.
const UVXCommand = "uvx"
