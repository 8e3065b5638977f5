package domain

import "sort"

// SupportedLanguages maps a target language code to the name used in prompts.
// "po" is Portuguese.
var SupportedLanguages = map[string]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"ar": "Arabic",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"hi": "Hindi",
	"it": "Italian",
	"kn": "Kannada",
	"te": "Telugu",
	"ta": "Tamil",
	"po": "Portuguese",
	"nl": "Dutch",
}

// LanguageName returns the display name for code.
func LanguageName(code string) (string, bool) {
	name, ok := SupportedLanguages[code]
	return name, ok
}

// LanguageCodes returns the supported codes in sorted order.
func LanguageCodes() []string {
	codes := make([]string, 0, len(SupportedLanguages))
	for code := range SupportedLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
