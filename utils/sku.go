package utils

import (
	"math/rand"
	"strings"

	"github.com/umeshtogadiya/shoppingNow-backend/apperr"
)

const (
	skuLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	skuDigits  = "0123456789"

	// MaxSKUAttempts bounds the collision-retry loop in GenerateUniqueSKU.
	MaxSKUAttempts = 10
)

// NewSKU produces one candidate SKU in the LLL-DDDD-LLL pattern,
// e.g. "KQT-4821-MZB". Uniqueness is the caller's concern.
func NewSKU() string {
	var b strings.Builder
	b.Grow(12)
	for i := 0; i < 3; i++ {
		b.WriteByte(skuLetters[rand.Intn(len(skuLetters))])
	}
	b.WriteByte('-')
	for i := 0; i < 4; i++ {
		b.WriteByte(skuDigits[rand.Intn(len(skuDigits))])
	}
	b.WriteByte('-')
	for i := 0; i < 3; i++ {
		b.WriteByte(skuLetters[rand.Intn(len(skuLetters))])
	}
	return b.String()
}

// GenerateUniqueSKU generates candidates until exists reports a free code,
// giving up after MaxSKUAttempts with a sku_exhausted error.
func GenerateUniqueSKU(exists func(sku string) (bool, error)) (string, error) {
	for attempt := 0; attempt < MaxSKUAttempts; attempt++ {
		candidate := NewSKU()
		taken, err := exists(candidate)
		if err != nil {
			return "", apperr.Internal(err, "sku uniqueness check failed")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperr.Newf(apperr.KindSKUExhausted,
		"could not find a free SKU in %d attempts", MaxSKUAttempts)
}
