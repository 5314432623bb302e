package rule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

func texts(tokens []domain.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizer_Name(t *testing.T) {
	assert.Equal(t, "rule", New().Name())
}

func TestTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain words", "Orc de PLA", []string{"Orc", "de", "PLA"}},
		{"currency suffix", "Orc de PLA 25€", []string{"Orc", "de", "PLA", "25", "€"}},
		{"currency prefix", "€25", []string{"€", "25"}},
		{"inverted marks", "¿Quieres un dado?", []string{"¿", "Quieres", "un", "dado", "?"}},
		{"brackets and stop", "Figura (resina).", []string{"Figura", "(", "resina", ")", "."}},
		{"ellipsis stays together", "Espera...", []string{"Espera", "..."}},
		{"unit after number", "Base de 25cm", []string{"Base", "de", "25", "cm"}},
		{"decimal unit", "2,5kg", []string{"2,5", "kg"}},
		{"hyphen between letters", "rojo-azul", []string{"rojo", "-", "azul"}},
		{"slash between letters", "PLA/resina", []string{"PLA", "/", "resina"}},
		{"hyphen between digits kept", "10-20", []string{"10-20"}},
		{"percent", "50%", []string{"50", "%"}},
		{"hashtag", "#warhammer", []string{"#", "warhammer"}},
		{"emoji suffix", "Orco🔥", []string{"Orco", "🔥"}},
		{"zwj emoji stays whole", "Mago 🧙‍♂️!", []string{"Mago", "🧙‍♂️", "!"}},
		{"accents", "Canción épica", []string{"Canción", "épica"}},
		{"single punctuation", "!", []string{"!"}},
		{"guillemets", "«Catan»", []string{"«", "Catan", "»"}},
	}

	tk := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tk.Tokenize(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(tokens))
		})
	}
}

func TestTokenizer_Whitespace(t *testing.T) {
	tk := New()

	tokens, err := tk.Tokenize("Orc  de\nPLA ")
	require.NoError(t, err)

	assert.Equal(t, []string{"Orc", " ", "de", "\n", "PLA"}, texts(tokens))
	spaces := make([]bool, len(tokens))
	for i, tok := range tokens {
		spaces[i] = tok.SpaceAfter
	}
	assert.Equal(t, []bool{true, false, false, false, true}, spaces)
}

func TestTokenizer_LeadingWhitespace(t *testing.T) {
	tokens, err := New().Tokenize("  Orc")
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, " ", tokens[0].Text)
	assert.True(t, tokens[0].SpaceAfter)
	assert.Equal(t, 2, tokens[1].Start)
}

func TestTokenizer_CharacterOffsets(t *testing.T) {
	tokens, err := New().Tokenize("Canción 25€")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, domain.Token{Text: "Canción", Start: 0, End: 7, SpaceAfter: true}, tokens[0])
	assert.Equal(t, domain.Token{Text: "25", Start: 8, End: 10}, tokens[1])
	assert.Equal(t, domain.Token{Text: "€", Start: 10, End: 11}, tokens[2])
}

func TestTokenizer_Empty(t *testing.T) {
	tokens, err := New().Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenizer_ReproducesText(t *testing.T) {
	samples := []string{
		"Orc de PLA 25€",
		"  ¿Dados?  ¡Sí!  ",
		"Set de 4 minis (28mm) para D&D 🐉🐉 - oferta...",
		"Catan: Ciudades y Caballeros / expansión\r\nnueva",
		"Precio: 12,50 € envío incluido",
		"\t",
	}

	tk := New()
	for _, s := range samples {
		tokens, err := tk.Tokenize(s)
		require.NoError(t, err, s)
		doc := &domain.Doc{Tokens: tokens}
		assert.Equal(t, s, doc.Text())
		for _, tok := range tokens {
			assert.NotEmpty(t, tok.Text)
			assert.False(t, strings.Contains(tok.Text, " ") && strings.TrimSpace(tok.Text) != "")
		}
	}
}

func TestTokenizer_WithUnits(t *testing.T) {
	tk := New(WithUnits("x"))

	tokens, err := tk.Tokenize("4x 25cm")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "x", "25cm"}, texts(tokens))

	tokens, err = New(WithUnits()).Tokenize("25cm")
	require.NoError(t, err)
	assert.Equal(t, []string{"25cm"}, texts(tokens))
}

func TestTokenizer_AlignsMaterialEntity(t *testing.T) {
	tokens, err := New().Tokenize("Orc de PLA 25€")
	require.NoError(t, err)
	doc := &domain.Doc{Tokens: tokens}

	ent, err := doc.CharSpan(7, 10, "MATERIAL")
	require.NoError(t, err)
	assert.Equal(t, "PLA", doc.EntityText(ent))

	ent, err = doc.CharSpan(11, 14, "PRICE")
	require.NoError(t, err)
	assert.Equal(t, "25€", doc.EntityText(ent))
}
