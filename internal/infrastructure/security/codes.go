package security

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// NumericCodes generates zero-padded decimal one-time codes.
type NumericCodes struct {
	digits int
}

func NewNumericCodes(digits int) *NumericCodes {
	if digits <= 0 {
		digits = 6
	}
	return &NumericCodes{digits: digits}
}

func (g *NumericCodes) NewCode() (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < g.digits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
