package rooms

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const maxCodeLength = 16

// GenerateCode returns a random code of n characters from A-Z0-9.
func GenerateCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, n)
	for i := range code {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}
		code[i] = codeAlphabet[idx.Int64()]
	}
	return string(code), nil
}

// NormalizeCode trims and upper-cases a user supplied code and checks that it
// only uses the code alphabet.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > maxCodeLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	return code, nil
}
