package remote

import (
	"errors"
	"fmt"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Language names a source language accepted by the service. The set is
// closed.
type Language string

const (
	CSharp      Language = "C#"
	VisualBasic Language = "Visual Basic"
	FSharp      Language = "F#"
	IL          Language = "IL"
)

// Languages lists every supported language in display order.
func Languages() []Language {
	return []Language{CSharp, VisualBasic, FSharp, IL}
}

var languageAliases = map[string]Language{
	"csharp": CSharp,
	"cs":     CSharp,
	"vb":     VisualBasic,
	"vbnet":  VisualBasic,
	"fsharp": FSharp,
	"fs":     FSharp,
	"il":     IL,
}

// ParseLanguage accepts a display name ("C#") or a short id ("csharp").
func ParseLanguage(s string) (Language, error) {
	if l := Language(s); l.Valid() {
		return l, nil
	}
	if l, ok := languageAliases[s]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Valid reports whether l is one of the canonical display names.
func (l Language) Valid() bool {
	for _, known := range Languages() {
		if l == known {
			return true
		}
	}
	return false
}
