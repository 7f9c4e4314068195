package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/you/bookstore/domain"
)

// DefaultCodeLength is the number of digits in a login code
const DefaultCodeLength = 6

// CodeGeneratorImpl implements domain.CodeGenerator with crypto/rand
type CodeGeneratorImpl struct {
	length int
}

// NewCodeGenerator creates a generator for codes of the given length
func NewCodeGenerator(length int) domain.CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &CodeGeneratorImpl{length: length}
}

// Generate returns a numeric code; every digit is uniform over 0-9 and leading zeros are kept
func (g *CodeGeneratorImpl) Generate() (string, error) {
	digits := make([]byte, g.length)

	for i := 0; i < g.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
