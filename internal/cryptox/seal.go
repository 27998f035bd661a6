// Package cryptox seals documents with a passphrase: the key is derived with
// argon2id and the data is encrypted with AES-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	sealVersion = 1
	saltSize    = 16
	keySize     = 32
)

var (
	ErrEmptyPassphrase = errors.New("passphrase is empty")
	ErrNotSealed       = errors.New("not a sealed document")
	// ErrOpenFailed covers a wrong passphrase as well as tampered data; GCM
	// cannot tell them apart.
	ErrOpenFailed = errors.New("wrong passphrase or corrupted document")
)

// Sealed is the on-disk form of a sealed document. Salt and nonce travel
// with the ciphertext.
type Sealed struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// DeriveKey stretches passphrase into an AES-256 key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Wipe overwrites b with zeros. Nil is ignored.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under passphrase and returns the JSON encoded
// Sealed document.
func Seal(plaintext, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := DeriveKey(passphrase, salt)
	defer Wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return json.Marshal(Sealed{
		Version: sealVersion,
		Salt:    salt,
		Nonce:   nonce,
		Data:    aesgcm.Seal(nil, nonce, plaintext, nil),
	})
}

// Open reverses Seal.
func Open(doc, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	var s Sealed
	if err := json.Unmarshal(doc, &s); err != nil || s.Version == 0 {
		return nil, ErrNotSealed
	}
	if s.Version != sealVersion {
		return nil, fmt.Errorf("%w: version %d", ErrNotSealed, s.Version)
	}

	key := DeriveKey(passphrase, s.Salt)
	defer Wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aesgcm.NonceSize() {
		return nil, ErrNotSealed
	}
	plaintext, err := aesgcm.Open(nil, s.Nonce, s.Data, nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}
