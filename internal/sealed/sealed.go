// Package sealed encrypts chunk payloads under a passphrase using age scrypt
// recipients. Sealed payloads are binary age files, so they are stored as-is
// in a chunk and recognised by their header line.
package sealed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
)

const header = "age-encryption.org/v1\n"

// WorkFactor is the scrypt cost, as log2(N), used by Seal. Open refuses
// files above maxWorkFactor so a crafted upload cannot pin the server.
var WorkFactor = 18

const maxWorkFactor = 20

var (
	ErrEmptyPassphrase = errors.New("sealed: empty passphrase")
	ErrWrongPassphrase = errors.New("sealed: wrong passphrase")
	ErrNotSealed       = errors.New("sealed: data is not sealed")
	ErrCorrupt         = errors.New("sealed: corrupt sealed data")
)

// Seal encrypts plaintext with passphrase and returns the age ciphertext.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("sealed: creating recipient: %w", err)
	}
	recipient.SetWorkFactor(WorkFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("sealed: creating encryptor: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("sealed: writing plaintext: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("sealed: finalizing: %w", err)
	}
	return buf.Bytes(), nil
}

// Open decrypts data produced by Seal. A passphrase that does not match
// yields ErrWrongPassphrase, data without an age header yields ErrNotSealed,
// and any other decryption failure wraps ErrCorrupt.
func Open(ciphertext []byte, passphrase string) ([]byte, error) {
	if !IsSealed(ciphertext) {
		return nil, ErrNotSealed
	}
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("sealed: creating identity: %w", err)
	}
	identity.SetMaxWorkFactor(maxWorkFactor)

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		if errors.Is(err, age.ErrIncorrectIdentity) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload: %w", ErrCorrupt, err)
	}
	return plaintext, nil
}

// IsSealed reports whether data starts with a complete age header: the
// version line, recipient stanzas and the MAC line. Text that merely begins
// with the version line is not sealed.
func IsSealed(data []byte) bool {
	if !bytes.HasPrefix(data, []byte(header)) {
		return false
	}
	_, err := age.ExtractHeader(bytes.NewReader(data))
	return err == nil
}
