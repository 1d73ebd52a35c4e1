package common

import (
	"crypto/rand"
	"math/big"
)

// MakeRandDigits returns a string of n random decimal digits.
func MakeRandDigits(n int) (string, error) {
	const digits = "1234567890"
	b := make([]byte, n)
	max := big.NewInt(int64(len(digits)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = digits[idx.Int64()]
	}
	return string(b), nil
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
