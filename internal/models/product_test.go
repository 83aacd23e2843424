package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVariations(t *testing.T) {
	valid := []ColorVariation{
		{Name: "Rouge", Hex: "#FF0000", Images: []string{"/uploads/products/p/rouge/a.jpg"}},
		{Name: "Bleu", Hex: "#0000FF", Images: []string{"/uploads/products/p/bleu/b.jpg"}},
	}
	assert.NoError(t, ValidateVariations(valid))

	// Liste vide
	assert.Error(t, ValidateVariations(nil))

	// Nom en double (insensible à la casse et aux espaces)
	dup := []ColorVariation{
		{Name: "Rouge", Images: []string{"a.jpg"}},
		{Name: " rouge ", Images: []string{"b.jpg"}},
	}
	err := ValidateVariations(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "double")

	// Variation sans image : jamais commitée à moitié formée
	noImages := []ColorVariation{{Name: "Vert", Hex: "#00FF00", Images: nil}}
	assert.Error(t, ValidateVariations(noImages))

	// Variation sans nom
	noName := []ColorVariation{{Name: "  ", Images: []string{"a.jpg"}}}
	assert.Error(t, ValidateVariations(noName))
}

func TestFindVariation(t *testing.T) {
	p := Product{Variations: []ColorVariation{
		{Name: "Rouge", Hex: "#FF0000", Images: []string{"a.jpg"}},
	}}

	v, ok := p.FindVariation("rouge")
	require.True(t, ok)
	assert.Equal(t, "Rouge", v.Name)

	_, ok = p.FindVariation("Vert")
	assert.False(t, ok)
}

func TestEncodeDecodeVariations(t *testing.T) {
	// Colonne vide = aucune variation
	variations, err := DecodeVariations("")
	require.NoError(t, err)
	assert.Empty(t, variations)

	// nil encode vers un tableau vide, pas "null"
	encoded, err := EncodeVariations(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	// JSON corrompu = erreur explicite
	_, err = DecodeVariations("{pas du json")
	assert.Error(t, err)
}
