// Package seal encrypts the wallet file at rest with an age passphrase.
package seal

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// Header is the first line of every age file.
const Header = "age-encryption.org/v1"

// DefaultWorkFactor is the scrypt work factor used for new files.
const DefaultWorkFactor = 18

// ErrEmptyPassphrase is returned when sealing or opening without a passphrase.
var ErrEmptyPassphrase = errors.New("passphrase is empty")

// Sealer encrypts and decrypts with one passphrase.
type Sealer struct {
	passphrase string
	workFactor int
}

// New returns a Sealer for passphrase. A workFactor of zero selects
// DefaultWorkFactor.
func New(passphrase string, workFactor int) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if workFactor <= 0 {
		workFactor = DefaultWorkFactor
	}
	return &Sealer{passphrase: passphrase, workFactor: workFactor}, nil
}

// Seal encrypts plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(s.passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(s.workFactor)

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Open decrypts ciphertext. A wrong passphrase or a damaged file yields
// ErrDecryptionFailed.
func (s *Sealer) Open(ciphertext []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(s.passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, skerr.Wrap(skerr.ErrDecryptionFailed, "opening wallet file: %v", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, skerr.Wrap(skerr.ErrDecryptionFailed, "reading wallet file: %v", err)
	}

	return plaintext, nil
}

// IsSealed reports whether data looks like an age file.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Header))
}

