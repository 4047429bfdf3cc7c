package usecases

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	orderSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderSuffixLen      = 9
)

// newOrderNumber builds "ORD-<unix millis>-<9 base36 chars>". Bytes at or
// above 252 are rejected so every symbol is equally likely.
func newOrderNumber() (string, error) {
	suffix := make([]byte, 0, orderSuffixLen)
	buf := make([]byte, 16)
	for len(suffix) < orderSuffixLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("order number entropy: %w", err)
		}
		for _, b := range buf {
			if b >= 252 {
				continue
			}
			suffix = append(suffix, orderSuffixAlphabet[int(b)%len(orderSuffixAlphabet)])
			if len(suffix) == orderSuffixLen {
				break
			}
		}
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix), nil
}
