package whisperx

import "strings"

var availableModels = []string{
	"tiny.en", "tiny",
	"base.en", "base",
	"small.en", "small",
	"medium.en", "medium",
	"large-v1", "large-v2", "large-v3", "large",
	"large-v3-turbo", "turbo",
}

// AvailableModels lists the model names accepted by --model.
func AvailableModels() []string {
	return append([]string(nil), availableModels...)
}

// IsKnownModel reports whether name is an accepted model.
func IsKnownModel(name string) bool {
	name = strings.TrimSpace(name)
	for _, m := range availableModels {
		if m == name {
			return true
		}
	}
	return false
}

// IsEnglishOnly reports whether name is an English-only model variant.
func IsEnglishOnly(name string) bool {
	return strings.HasSuffix(strings.TrimSpace(name), ".en")
}
