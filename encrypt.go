package serializable

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption errors.
var (
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor seals and opens encoded records.
type Encryptor interface {
	// Encrypt encrypts plaintext and returns ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext and returns plaintext.
	Decrypt(ciphertext []byte) ([]byte, error)
}

// aeadEncryptor seals with an AEAD, prepending the nonce to the ciphertext.
type aeadEncryptor struct {
	aead cipher.AEAD
}

// AES returns an AES-GCM encryptor.
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256.
func AES(key []byte) (Encryptor, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return &aeadEncryptor{aead: gcm}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// ChaCha20 returns an XChaCha20-Poly1305 encryptor. Key must be 32 bytes.
func ChaCha20(key []byte) (Encryptor, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	return &aeadEncryptor{aead: aead}, nil
}

func (e *aeadEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aeadEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := e.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrCiphertextShort
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// rsaEncryptor implements RSA-OAEP encryption.
type rsaEncryptor struct {
	pub  *rsa.PublicKey
	priv *rsa.PrivateKey
}

// RSA returns an RSA-OAEP encryptor.
// pub is required for encryption; priv is required for decryption.
// Either can be nil if only one operation is needed.
//
// OAEP seals at most k-66 bytes with a k-byte key, which only fits small
// records. Use Envelope for arbitrary payloads.
func RSA(pub *rsa.PublicKey, priv *rsa.PrivateKey) Encryptor {
	return &rsaEncryptor{pub: pub, priv: priv}
}

func (e *rsaEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	if e.pub == nil {
		return nil, fmt.Errorf("%w: public key required for encryption", ErrInvalidKey)
	}

	return rsa.EncryptOAEP(sha256.New(), rand.Reader, e.pub, plaintext, nil)
}

func (e *rsaEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if e.priv == nil {
		return nil, fmt.Errorf("%w: private key required for decryption", ErrInvalidKey)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, e.priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// envelopeEncryptor seals each payload with a fresh AES-256 data key and
// seals the data key with the master key.
//
// Format: [2 bytes key len][sealed key][sealed data]
type envelopeEncryptor struct {
	master cipher.AEAD
}

// Envelope returns an envelope encryptor using a master key.
// Master key must be 16, 24, or 32 bytes.
func Envelope(masterKey []byte) (Encryptor, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}
	return &envelopeEncryptor{master: gcm}, nil
}

func (e *envelopeEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	dataKey := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, err
	}

	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	sealedData, err := (&aeadEncryptor{aead: dataGCM}).Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	sealedKey, err := (&aeadEncryptor{aead: e.master}).Encrypt(dataKey)
	if err != nil {
		return nil, err
	}

	keyLen := len(sealedKey)
	out := make([]byte, 2+keyLen+len(sealedData))
	out[0] = byte(keyLen >> 8)
	out[1] = byte(keyLen)
	copy(out[2:], sealedKey)
	copy(out[2+keyLen:], sealedData)
	return out, nil
}

func (e *envelopeEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}
	keyLen := int(ciphertext[0])<<8 | int(ciphertext[1])
	if len(ciphertext) < 2+keyLen {
		return nil, ErrCiphertextShort
	}

	dataKey, err := (&aeadEncryptor{aead: e.master}).Decrypt(ciphertext[2 : 2+keyLen])
	if err != nil {
		return nil, err
	}
	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return (&aeadEncryptor{aead: dataGCM}).Decrypt(ciphertext[2+keyLen:])
}
