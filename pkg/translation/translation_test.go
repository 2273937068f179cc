package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New()
	require.NoError(t, err)
	return tr
}

func TestDetectLanguage(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"english", "sugar, salt, wheat flour", LangEnglish},
		{"spanish", "azúcar, harina, aceite de oliva", LangSpanish},
		{"portuguese", "açúcar, farinha, óleo, leite", LangPortuguese},
		{"empty", "", LangEnglish},
		{"unknown words", "xanthan gum, e471", LangEnglish},
		// "sal" is a substring of "salt"; only whole-word hits may count
		{"english with embedded foreign substrings", "salted butter, unsalted nuts, malted barley", LangEnglish},
		{"spanish whole words", "sal, aceite, huevo", LangSpanish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.DetectLanguage(tt.text))
		})
	}
}

func TestTranslateIngredients(t *testing.T) {
	tr := newTranslator(t)

	t.Run("english target joins as-is", func(t *testing.T) {
		got := tr.TranslateIngredients([]string{"sugar", "salt"}, LangEnglish)
		assert.Equal(t, "sugar, salt", got)
	})

	t.Run("spanish", func(t *testing.T) {
		got := tr.TranslateIngredients([]string{"sugar", "salt", "chicken"}, LangSpanish)
		assert.Equal(t, "azúcar, sal, pollo", got)
	})

	t.Run("portuguese with regional variant", func(t *testing.T) {
		got := tr.TranslateIngredients([]string{"sugar", "milk powder"}, "pt-BR")
		assert.Equal(t, "açúcar, leite em pó", got)
	})

	t.Run("unknown terms pass through", func(t *testing.T) {
		got := tr.TranslateIngredients([]string{"xanthan gum", "salt"}, LangSpanish)
		assert.Equal(t, "xanthan gum, sal", got)
	})
}

func TestTranslateFrom(t *testing.T) {
	tr := newTranslator(t)

	t.Run("same language is a join", func(t *testing.T) {
		got := tr.TranslateFrom([]string{"açúcar", "sal"}, LangPortuguese, "pt-BR")
		assert.Equal(t, "açúcar, sal", got)
	})

	t.Run("pivot through english", func(t *testing.T) {
		got := tr.TranslateFrom([]string{"açúcar", "frango"}, LangPortuguese, LangSpanish)
		assert.Equal(t, "azúcar, pollo", got)
	})

	t.Run("foreign to english", func(t *testing.T) {
		got := tr.TranslateFrom([]string{"azúcar", "pollo"}, LangSpanish, LangEnglish)
		assert.Equal(t, "sugar, chicken", got)
	})
}
