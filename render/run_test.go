package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidec/deck"
)

func titleDeck() *deck.Deck {
	return &deck.Deck{
		Title:  "My Deck",
		Slides: []*deck.SlideDefinition{{Index: 1}, {Index: 2}, {Index: 3}},
	}
}

func TestExpandTitle(t *testing.T) {
	got, err := expandTitle("{{ .Title }} ({{ .Slides }} slides)", titleDeck(), "/work/decks/quarterly.json")
	require.NoError(t, err)
	assert.Equal(t, "My Deck (3 slides)", got)
}

func TestExpandTitleSourceAndDate(t *testing.T) {
	got, err := expandTitle("{{ .Source }}", titleDeck(), "/work/decks/quarterly.json")
	require.NoError(t, err)
	assert.Equal(t, "quarterly.json", got)

	got, err = expandTitle("{{ .Date }}", titleDeck(), "/work/decks/quarterly.json")
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, got)
}

func TestExpandTitleTemplateFunctions(t *testing.T) {
	got, err := expandTitle(`{{ .Title | upper }} {{ trim "  x  " }}`, titleDeck(), "/work/decks/quarterly.json")
	require.NoError(t, err)
	assert.Equal(t, "MY DECK x", got)
}

func TestExpandTitleEmptyFallsBackToSource(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"empty template", ""},
		{"whitespace result", "   "},
		{"empty expansion", `{{ "" }}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTitle(tt.tmpl, titleDeck(), "/work/decks/quarterly.json")
			require.NoError(t, err)
			assert.Equal(t, "quarterly", got)
		})
	}
}

func TestExpandTitleErrors(t *testing.T) {
	_, err := expandTitle("{{ .Title", titleDeck(), "/work/decks/quarterly.json")
	assert.Error(t, err, "unterminated action must fail at parse")

	_, err = expandTitle("{{ .NoSuchField }}", titleDeck(), "/work/decks/quarterly.json")
	assert.Error(t, err, "unknown field must fail at execute")
}
