package language

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto requests language detection by the model.
const Auto = "auto"

// catalogue lists the languages the speech model recognizes, keyed by the
// code the model accepts on its command line.
var catalogue = map[string]string{
	"en": "english", "zh": "chinese", "de": "german", "es": "spanish",
	"ru": "russian", "ko": "korean", "fr": "french", "ja": "japanese",
	"pt": "portuguese", "tr": "turkish", "pl": "polish", "ca": "catalan",
	"nl": "dutch", "ar": "arabic", "sv": "swedish", "it": "italian",
	"id": "indonesian", "hi": "hindi", "fi": "finnish", "vi": "vietnamese",
	"he": "hebrew", "uk": "ukrainian", "el": "greek", "ms": "malay",
	"cs": "czech", "ro": "romanian", "da": "danish", "hu": "hungarian",
	"ta": "tamil", "no": "norwegian", "th": "thai", "ur": "urdu",
	"hr": "croatian", "bg": "bulgarian", "lt": "lithuanian", "la": "latin",
	"mi": "maori", "ml": "malayalam", "cy": "welsh", "sk": "slovak",
	"te": "telugu", "fa": "persian", "lv": "latvian", "bn": "bengali",
	"sr": "serbian", "az": "azerbaijani", "sl": "slovenian", "kn": "kannada",
	"et": "estonian", "mk": "macedonian", "br": "breton", "eu": "basque",
	"is": "icelandic", "hy": "armenian", "ne": "nepali", "mn": "mongolian",
	"bs": "bosnian", "kk": "kazakh", "sq": "albanian", "sw": "swahili",
	"gl": "galician", "mr": "marathi", "pa": "punjabi", "si": "sinhala",
	"km": "khmer", "sn": "shona", "yo": "yoruba", "so": "somali",
	"af": "afrikaans", "oc": "occitan", "ka": "georgian", "be": "belarusian",
	"tg": "tajik", "sd": "sindhi", "gu": "gujarati", "am": "amharic",
	"yi": "yiddish", "lo": "lao", "uz": "uzbek", "fo": "faroese",
	"ht": "haitian creole", "ps": "pashto", "tk": "turkmen", "nn": "nynorsk",
	"mt": "maltese", "sa": "sanskrit", "lb": "luxembourgish", "my": "myanmar",
	"bo": "tibetan", "tl": "tagalog", "mg": "malagasy", "as": "assamese",
	"tt": "tatar", "haw": "hawaiian", "ln": "lingala", "ha": "hausa",
	"ba": "bashkir", "jw": "javanese", "su": "sundanese", "yue": "cantonese",
}

var byName map[string]string

func init() {
	byName = make(map[string]string, len(catalogue))
	for code, name := range catalogue {
		byName[name] = code
	}
}

// Normalize resolves a user-supplied language to a catalogue code, or Auto.
func Normalize(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == Auto {
		return Auto, nil
	}
	if _, ok := catalogue[v]; ok {
		return v, nil
	}
	if code, ok := byName[v]; ok {
		return code, nil
	}
	if base, err := xlang.ParseBase(v); err == nil {
		if _, ok := catalogue[base.String()]; ok {
			return base.String(), nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (use a code such as \"en\" or \"auto\")", value)
}

// IsAuto reports whether code requests detection.
func IsAuto(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	return code == "" || code == Auto
}

// DisplayName returns a human-readable English name for a catalogue code.
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	switch code {
	case "":
		return "Unknown"
	case Auto:
		return "Auto-detect"
	}
	if tag, err := xlang.Parse(code); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	if name, ok := catalogue[code]; ok {
		return cases.Title(xlang.English).String(name)
	}
	return strings.ToUpper(code)
}

// Choices returns every accepted code, sorted, with Auto first.
func Choices() []string {
	codes := make([]string, 0, len(catalogue)+1)
	for code := range catalogue {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return append([]string{Auto}, codes...)
}
