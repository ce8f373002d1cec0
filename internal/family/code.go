package family

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewInviteCode returns a random uppercase invite code between 6 and 10
// characters. Ambiguous characters (I, O, 0, 1) are left out of the
// alphabet since the codes are read aloud between relatives.
func NewInviteCode() (string, error) {
	span, err := rand.Int(rand.Reader, big.NewInt(5))
	if err != nil {
		return "", fmt.Errorf("code length: %w", err)
	}
	length := 6 + int(span.Int64())

	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("code char: %w", err)
		}
		out[i] = codeAlphabet[idx.Int64()]
	}
	return string(out), nil
}
