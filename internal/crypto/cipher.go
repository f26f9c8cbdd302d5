// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// IVSize is the AES-CBC initialization vector size.
const IVSize = aes.BlockSize

// envelopeSeparator joins the hex IV and the hex ciphertext.
const envelopeSeparator = ":"

// Encrypt encrypts plaintext with AES-256-CBC under key using a fresh random
// IV and returns the envelope "hex(iv):hex(ciphertext)".
//
// key must be exactly [KeySize] bytes. Any other size is a programming error
// and panics.
func Encrypt(key, plaintext []byte) (string, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w: %w", ErrRandomSource, err)
	}
	return encryptWithIV(key, iv, plaintext), nil
}

// EncryptString is [Encrypt] for UTF-8 text.
func EncryptString(key []byte, plaintext string) (string, error) {
	return Encrypt(key, []byte(plaintext))
}

func encryptWithIV(key, iv, plaintext []byte) string {
	mustKeySize(key)
	if len(iv) != IVSize {
		panic(fmt.Sprintf("crypto: iv must be %d bytes, got %d", IVSize, len(iv)))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(fmt.Sprintf("crypto: %v", err))
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + envelopeSeparator + hex.EncodeToString(ciphertext)
}

// Decrypt opens an envelope produced by [Encrypt].
//
// Errors wrap [ErrInvalidEnvelope] when the string is not a well-formed
// envelope and [ErrDecryption] when the padding does not check out, which
// is what a wrong key produces almost always.
func Decrypt(key []byte, envelope string) ([]byte, error) {
	mustKeySize(key)

	iv, ciphertext, err := ParseEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(fmt.Sprintf("crypto: %v", err))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok {
		Zero(plaintext)
		return nil, decryptError("unpad")
	}
	return unpadded, nil
}

// DecryptString is [Decrypt] for fields that hold UTF-8 text. A plaintext
// that is not valid UTF-8 is reported as [ErrDecryption].
func DecryptString(key []byte, envelope string) (string, error) {
	plaintext, err := Decrypt(key, envelope)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", decryptError("utf8")
	}
	return string(plaintext), nil
}

// ParseEnvelope splits and hex-decodes an envelope without decrypting it.
// The server uses it to reject garbage it would otherwise store blindly.
func ParseEnvelope(envelope string) (iv, ciphertext []byte, err error) {
	ivHex, ctHex, found := strings.Cut(envelope, envelopeSeparator)
	if !found {
		return nil, nil, formatError("separator")
	}
	if len(ivHex) != IVSize*2 {
		return nil, nil, formatError("iv length")
	}
	if ctHex == "" || len(ctHex)%(aes.BlockSize*2) != 0 {
		return nil, nil, formatError("ciphertext length")
	}

	iv, err = hex.DecodeString(ivHex)
	if err != nil {
		return nil, nil, formatError("iv hex")
	}
	ciphertext, err = hex.DecodeString(ctHex)
	if err != nil {
		return nil, nil, formatError("ciphertext hex")
	}
	return iv, ciphertext, nil
}

// IsEnvelope reports whether s is syntactically a valid envelope.
func IsEnvelope(s string) bool {
	_, _, err := ParseEnvelope(s)
	return err == nil
}

func mustKeySize(key []byte) {
	if len(key) != KeySize {
		panic(fmt.Sprintf("crypto: key must be %d bytes, got %d", KeySize, len(key)))
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
