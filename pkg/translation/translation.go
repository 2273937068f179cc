// Package translation provides static ingredient dictionaries for the
// languages the supported markets label in. It is lookup-based on purpose:
// label text must be reproducible and reviewable, so no external
// translation service is involved.
package translation

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

//go:embed messages/*.json
var messagesFS embed.FS

// Language codes used across the label domain
const (
	LangEnglish    = "en"
	LangSpanish    = "es"
	LangPortuguese = "pt"
)

// Translator translates ingredient terms between English and the
// supported label languages.
type Translator struct {
	// toTarget maps target language -> english term -> translated term
	toTarget map[string]map[string]string
	// toEnglish maps source language -> foreign term -> english term
	toEnglish map[string]map[string]string
}

// New loads the embedded dictionaries. It fails only if the embedded
// data is malformed, which is a build defect.
func New() (*Translator, error) {
	t := &Translator{
		toTarget:  make(map[string]map[string]string),
		toEnglish: make(map[string]map[string]string),
	}

	for _, lang := range []string{LangSpanish, LangPortuguese} {
		data, err := messagesFS.ReadFile(fmt.Sprintf("messages/en-%s.json", lang))
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary en-%s: %w", lang, err)
		}

		dict := make(map[string]string)
		if err := json.Unmarshal(data, &dict); err != nil {
			return nil, fmt.Errorf("failed to parse dictionary en-%s: %w", lang, err)
		}

		t.toTarget[lang] = dict

		reverse := make(map[string]string, len(dict))
		for en, foreign := range dict {
			if _, ok := reverse[foreign]; !ok {
				reverse[foreign] = en
			}
		}
		t.toEnglish[lang] = reverse
	}

	return t, nil
}

// DetectLanguage guesses the language of ingredient text by counting
// dictionary hits per language. Terms match whole words only, so short
// translations like "sal" cannot fire inside English words like "salt".
// English is the default when nothing matches; Portuguese wins ties
// against Spanish only with more hits.
func (t *Translator) DetectLanguage(text string) string {
	lower := strings.ToLower(text)

	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[w] = struct{}{}
	}

	count := func(lang string) int {
		n := 0
		for term := range t.toEnglish[lang] {
			if strings.ContainsRune(term, ' ') {
				// Multi-word terms are distinctive enough for a substring match
				if strings.Contains(lower, term) {
					n++
				}
				continue
			}
			if _, ok := words[term]; ok {
				n++
			}
		}
		return n
	}

	pt := count(LangPortuguese)
	es := count(LangSpanish)

	if pt > es && pt > 0 {
		return LangPortuguese
	}
	if es > 0 {
		return LangSpanish
	}
	return LangEnglish
}

// TranslateIngredients translates English ingredient terms into the target
// language and joins them into label text. Unknown terms pass through
// unchanged; the English target is a plain join.
func (t *Translator) TranslateIngredients(ingredients []string, target string) string {
	baseLang := baseLanguage(target)
	dict, ok := t.toTarget[baseLang]
	if !ok {
		return strings.Join(ingredients, ", ")
	}

	translated := make([]string, len(ingredients))
	for i, ing := range ingredients {
		key := strings.ToLower(strings.TrimSpace(ing))
		if term, ok := dict[key]; ok {
			translated[i] = term
		} else {
			translated[i] = ing
		}
	}
	return strings.Join(translated, ", ")
}

// TranslateFrom translates ingredients from a detected source language into
// the target language, pivoting through English when the source is not
// English.
func (t *Translator) TranslateFrom(ingredients []string, source, target string) string {
	if baseLanguage(source) == baseLanguage(target) {
		return strings.Join(ingredients, ", ")
	}

	english := ingredients
	if dict, ok := t.toEnglish[baseLanguage(source)]; ok {
		english = make([]string, len(ingredients))
		for i, ing := range ingredients {
			key := strings.ToLower(strings.TrimSpace(ing))
			if term, ok := dict[key]; ok {
				english[i] = term
			} else {
				english[i] = ing
			}
		}
	}

	return t.TranslateIngredients(english, target)
}

// baseLanguage strips a regional variant, e.g. "pt-BR" -> "pt".
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
