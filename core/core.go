package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func GetListTypeDescription(listType ListType) string {
	var listTypeString string = "followers"

	switch listType {
	case Followers:
		listTypeString = "followers"
	case Following:
		listTypeString = "following"
	}

	return listTypeString
}

// NormalizeUsername trims surrounding whitespace and lowercases the name.
// cases.Caser is stateful, so a fresh one is built per call.
func NormalizeUsername(raw string) Username {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	return Username(cases.Lower(language.Und).String(trimmed))
}
