package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

const (
	nonceSize = 12
	tagSize   = 16

	// versionMagic prefixes every sealed blob so the format can evolve.
	versionMagic = byte('B')
)

// KeySize is the required data key length (AES-256).
const KeySize = 32

// ErrMalformed is returned when a sealed blob cannot be parsed.
var ErrMalformed = errors.New("malformed sealed data")

// Symmetric seals and opens byte blobs with AES-256-GCM. The additional
// authenticated data binds a blob to its owning record, so ciphertext moved
// between rows fails to open.
type Symmetric interface {
	Seal(aad, plaintext []byte) ([]byte, error)
	Open(aad, sealed []byte) ([]byte, error)
}

type symmetric struct {
	aead stdcipher.AEAD
}

// NewSymmetric builds a Symmetric cipher from a raw 32-byte data key.
func NewSymmetric(key []byte) (Symmetric, error) {
	if len(key) != KeySize {
		return nil, errors.New("data key must be 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &symmetric{aead: aead}, nil
}

// GenerateKey returns a fresh random data key.
func GenerateKey() ([]byte, error) {
	return RandomBytes(KeySize)
}

// RandomBytes returns size cryptographically random bytes.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *symmetric) Seal(aad, plaintext []byte) ([]byte, error) {
	nonce, err := RandomBytes(nonceSize)
	if err != nil {
		return nil, err
	}

	ciphertext := s.aead.Seal(nil, nonce, plaintext, aad)

	// Layout: magic | nonce | ciphertext+tag
	sealed := make([]byte, 1+nonceSize+len(ciphertext))
	sealed[0] = versionMagic
	copy(sealed[1:], nonce)
	copy(sealed[1+nonceSize:], ciphertext)

	return sealed, nil
}

func (s *symmetric) Open(aad, sealed []byte) ([]byte, error) {
	if len(sealed) < 1+nonceSize+tagSize {
		return nil, ErrMalformed
	}
	if sealed[0] != versionMagic {
		return nil, ErrMalformed
	}

	nonce := sealed[1 : 1+nonceSize]
	ciphertext := sealed[1+nonceSize:]

	return s.aead.Open(nil, nonce, ciphertext, aad)
}
