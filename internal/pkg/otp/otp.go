package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet is uppercase-alphanumeric: codes are read back from email clients,
// so lowercase/ambiguity-prone alphabets are avoided.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length of issued verification codes.
const Length = 6

// New generates a fixed-length one-time code. Each character is drawn with
// rand.Int, which rejects values outside the range, so the selection is
// unbiased across the alphabet.
func New() (string, error) {
	b := make([]byte, Length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}
