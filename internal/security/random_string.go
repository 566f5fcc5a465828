package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

const (
	upperAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet  = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet  = "23456789"
	symbolAlphabet = "!#%+-=?@"
)

// TemporaryPassword returns a random password containing at least one capital
// letter, lowercase letter, digit and symbol. Lengths below 8 are raised to 8.
func TemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	required := []string{upperAlphabet, lowerAlphabet, digitAlphabet, symbolAlphabet}
	value := make([]byte, 0, length)
	for _, alphabet := range required {
		char, err := RandomString(1, alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, char...)
	}
	rest, err := RandomString(length-len(required), upperAlphabet+lowerAlphabet+digitAlphabet)
	if err != nil {
		return "", err
	}
	value = append(value, rest...)

	for index := len(value) - 1; index > 0; index-- {
		position, err := rand.Int(rand.Reader, big.NewInt(int64(index+1)))
		if err != nil {
			return "", err
		}
		swap := position.Int64()
		value[index], value[swap] = value[swap], value[index]
	}
	return string(value), nil
}
