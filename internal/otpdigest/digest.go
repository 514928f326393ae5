// Package otpdigest produces a deterministic comparable digest used to check
// OTPs and passwords for equality. The transform is AES-256-CBC with a fixed
// key and IV, PKCS#7 padding, hex output: the same input always yields the
// same ciphertext, so stored and submitted values are compared by recomputing
// the transform, never by decrypting.
//
// A fixed IV with a block cipher is not a sound confidentiality primitive.
// It is kept only because that is the comparison contract of the upstream
// account store; replacing it with salted hashing changes every persisted
// hash and is an explicit compatibility decision, not a drop-in fix.
package otpdigest

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
)

type Digest struct {
	key []byte
	iv  []byte
}

func New(key, iv []byte) (*Digest, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	return &Digest{key: key, iv: iv}, nil
}

// Sum returns the hex-encoded deterministic digest of value.
func (d *Digest) Sum(value string) (string, error) {
	block, err := aes.NewCipher(d.key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	padded := pad([]byte(value), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, d.iv).CryptBlocks(out, padded)

	return hex.EncodeToString(out), nil
}

func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}
