package domain

import "strings"

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
	"bn": "Bengali",
}

// LanguageName returns the English name for an ISO 639-1 code, or the code itself when unknown.
func LanguageName(code string) string {
	key := strings.ToLower(strings.TrimSpace(code))
	if name, ok := languageNames[key]; ok {
		return name
	}
	return strings.TrimSpace(code)
}

// LanguageCode maps a language name (or code) back to its ISO 639-1 code.
// Unknown inputs are returned lowercased.
func LanguageCode(nameOrCode string) string {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	if _, ok := languageNames[key]; ok {
		return key
	}
	for code, name := range languageNames {
		if strings.ToLower(name) == key {
			return code
		}
	}
	return key
}

// IsEnglish reports whether a language code or name denotes English.
func IsEnglish(nameOrCode string) bool {
	return LanguageCode(nameOrCode) == "en"
}
