package keystore

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealer provides authenticated encryption for token values at rest using
// ChaCha20-Poly1305. Output format: [24-byte nonce][ciphertext][16-byte tag].
type sealer struct {
	aead cipher.AEAD
}

func newSealer(masterKey []byte) (*sealer, error) {
	// Derive a proper 32-byte key from whatever material was supplied.
	key := sha256.Sum256(masterKey)

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("init token sealer: %w", err)
	}
	return &sealer{aead: aead}, nil
}

func (s *sealer) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *sealer) open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("sealed value too short")
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal value: %w", err)
	}
	return plain, nil
}

// LoadMasterKey sources the sealing key material, in order of preference:
// the file at path (when set), the DUKAPOS_MASTER_KEY environment variable,
// and finally an ephemeral random key. The ephemeral fallback means sealed
// tokens do not survive a restart, which only costs the operator a login.
func LoadMasterKey(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read master key file: %w", err)
		}
		return data, nil
	}

	if env := os.Getenv("DUKAPOS_MASTER_KEY"); env != "" {
		return []byte(env), nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate ephemeral master key: %w", err)
	}
	return key, nil
}
