package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNormalizesAliases(t *testing.T) {
	tests := []struct {
		name string
		in   [3]string
		want Key
	}{
		{
			name: "canonical passes through",
			in:   [3]string{"arquitetura", "residencial", "unifamiliar"},
			want: Key{"arquitetura", "residencial", "unifamiliar"},
		},
		{
			name: "aliases collapse",
			in:   [3]string{"ENG", "Residencia", "casa"},
			want: Key{"estrutural", "residencial", "unifamiliar"},
		},
		{
			name: "blank fields take defaults",
			in:   [3]string{"", "", ""},
			want: GlobalDefaultKey,
		},
		{
			name: "whitespace trimmed",
			in:   [3]string{" Arquitetura ", " comercial", "escritorios "},
			want: Key{"arquitetura", "comercial", "escritorio"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in[0], tt.in[1], tt.in[2]))
		})
	}
}

func TestFallbackChain(t *testing.T) {
	chain := FallbackChain(Key{"estrutural", "comercial", "galpao"})
	assert.Equal(t, []Key{
		{"estrutural", "comercial", "galpao"},
		{"estrutural", "residencial", "unifamiliar"},
		GlobalDefaultKey,
	}, chain)

	// The global default's own chain is just itself.
	assert.Equal(t, []Key{GlobalDefaultKey}, FallbackChain(GlobalDefaultKey))
}

func TestStaticCatalogReturnsClones(t *testing.T) {
	c := NewStaticCatalog()
	key := GlobalDefaultKey

	first, err := c.Get(context.Background(), key)
	assert.NoError(t, err)
	assert.NotNil(t, first)

	first.Sections[0].Name = "mutated"

	second, err := c.Get(context.Background(), key)
	assert.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Sections[0].Name)
}

func TestStaticCatalogMiss(t *testing.T) {
	c := NewStaticCatalog()
	tpl, err := c.Get(context.Background(), Key{"naval", "offshore", "plataforma"})
	assert.NoError(t, err)
	assert.Nil(t, tpl)
}
