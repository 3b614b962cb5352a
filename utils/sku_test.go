package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
)

var skuPattern = regexp.MustCompile(`^[A-Z]{3}-\d{4}-[A-Z]{3}$`)

func TestNewSKUFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, skuPattern, NewSKU())
	}
}

func TestGenerateUniqueSKU(t *testing.T) {
	store := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		sku, err := GenerateUniqueSKU(func(candidate string) (bool, error) {
			return store[candidate], nil
		})
		require.NoError(t, err)
		require.False(t, store[sku], "duplicate accepted: %s", sku)
		store[sku] = true
	}
}

func TestGenerateUniqueSKUExhausted(t *testing.T) {
	attempts := 0
	_, err := GenerateUniqueSKU(func(string) (bool, error) {
		attempts++
		return true, nil // every candidate collides
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindSKUExhausted, apperr.KindOf(err))
	assert.Equal(t, MaxSKUAttempts, attempts)
}

func TestGenerateUniqueSKUCheckError(t *testing.T) {
	_, err := GenerateUniqueSKU(func(string) (bool, error) {
		return false, assert.AnError
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
