// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Character classes used by the password generator.
const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// DefaultPasswordLength is used when the caller does not ask for a length.
const DefaultPasswordLength = 16

// GeneratorOptions toggles the character classes of a generated password.
type GeneratorOptions struct {
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultGeneratorOptions enables every class.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true}
}

// Pool returns the characters the options allow. With every class
// disabled it falls back to letters and digits.
func (o GeneratorOptions) Pool() string {
	var sb strings.Builder
	if o.Uppercase {
		sb.WriteString(UppercaseChars)
	}
	if o.Lowercase {
		sb.WriteString(LowercaseChars)
	}
	if o.Numbers {
		sb.WriteString(DigitChars)
	}
	if o.Symbols {
		sb.WriteString(SymbolChars)
	}
	if sb.Len() == 0 {
		return UppercaseChars + LowercaseChars + DigitChars
	}
	return sb.String()
}

// GeneratePassword draws length characters uniformly from the option pool.
// rand.Int rejects out-of-range samples internally, so every character of
// the pool is equally likely.
func GeneratePassword(length int, opts GeneratorOptions) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	pool := opts.Pool()
	poolSize := big.NewInt(int64(len(pool)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, poolSize)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		out[i] = pool[n.Int64()]
	}
	return string(out), nil
}
