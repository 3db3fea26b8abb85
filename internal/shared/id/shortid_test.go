package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	got, err := Generate(12)
	require.NoError(t, err)
	assert.Len(t, got, 12)

	// Non-positive lengths fall back to the default
	got, err = Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
}

func TestGenerate_Alphabet(t *testing.T) {
	got, err := Generate(64)
	require.NoError(t, err)
	for _, r := range got {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixCapacityToken, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "tok_"))
	assert.Len(t, got, len("tok_")+DefaultLength)
}

func TestParsePrefixedID(t *testing.T) {
	prefix, shortID, err := ParsePrefixedID("st_xK9mP2vL3nQ4")
	require.NoError(t, err)
	assert.Equal(t, "st", prefix)
	assert.Equal(t, "xK9mP2vL3nQ4", shortID)

	_, _, err = ParsePrefixedID("nounderscore")
	assert.Error(t, err)
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("plan_abc123", PrefixPlanDefinition))
	assert.Error(t, ValidatePrefix("tok_abc123", PrefixPlanDefinition))
	assert.Error(t, ValidatePrefix("garbage", PrefixPlanDefinition))
}

func TestExtractShortID(t *testing.T) {
	shortID, err := ExtractShortID("pa_abcDEF123456", PrefixPlanAssignment)
	require.NoError(t, err)
	assert.Equal(t, "abcDEF123456", shortID)

	_, err = ExtractShortID("st_abcDEF123456", PrefixPlanAssignment)
	assert.Error(t, err)
}
