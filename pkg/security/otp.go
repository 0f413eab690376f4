package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a random numeric code of the requested length.
// Lengths outside [4, 10] are clamped.
func GenerateOTP(digits int) (string, error) {
	digits = clampInt(digits, 4, 10)

	code := make([]byte, digits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
