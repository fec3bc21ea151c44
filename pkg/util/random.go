package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GenerateSKU builds a SKU like "PCB-2777" from a product name prefix
// plus a random 4-digit suffix.
func GenerateSKU(name string) string {
	prefix := skuPrefix(name)
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a fixed suffix
		return fmt.Sprintf("%s-0000", prefix)
	}
	return fmt.Sprintf("%s-%04d", prefix, n.Int64()+1000)
}

func skuPrefix(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := rune(word[0])
		if r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "SKU"
	}
	return b.String()
}
