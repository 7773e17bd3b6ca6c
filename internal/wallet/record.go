// Package wallet holds the locally persisted wallet list: the record type,
// recovery phrase helpers, themed default names, storage backends, and the
// observable Store that the session controller and wizards share.
package wallet

import (
	"strings"
	"time"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// AvatarCount is the size of the fixed avatar list IconIndex points into.
const AvatarCount = 8

// Record is one locally known wallet. Every field except Name comes from the
// backend; records are never edited in place.
type Record struct {
	// ID is the backend-issued identifier, unique per recovery phrase.
	ID string `json:"id"`

	// Name is the display label.
	Name string `json:"name"`

	// Address is the first receiving address.
	Address string `json:"address"`

	// Mnemonic is the space-separated recovery phrase. It is sent with every
	// balance, history and send request.
	Mnemonic string `json:"mnemonic"`

	// Balance is the last known balance in satoshis. Advisory only.
	Balance int64 `json:"balance"`

	// CreatedAt is the RFC 3339 time the record was saved locally.
	CreatedAt string `json:"createdAt"`

	// IconIndex selects an avatar; nil means the default.
	IconIndex *int `json:"iconIndex,omitempty"`
}

// NewRecord builds a record stamped with now.
func NewRecord(id, address, mnemonic, name string, icon *int, now time.Time) Record {
	return Record{
		ID:        id,
		Name:      name,
		Address:   address,
		Mnemonic:  mnemonic,
		CreatedAt: now.UTC().Format(time.RFC3339),
		IconIndex: icon,
	}
}

// Words splits the recovery phrase into its words.
func (r Record) Words() []string {
	return strings.Fields(r.Mnemonic)
}

// Icon returns the avatar index, defaulting to 0.
func (r Record) Icon() int {
	if r.IconIndex == nil {
		return 0
	}
	return *r.IconIndex
}

// Validate checks the fields the backend must have supplied.
func (r Record) Validate() error {
	missing := make(map[string]string)
	if strings.TrimSpace(r.ID) == "" {
		missing["id"] = "empty"
	}
	if strings.TrimSpace(r.Address) == "" {
		missing["address"] = "empty"
	}
	if strings.TrimSpace(r.Mnemonic) == "" {
		missing["mnemonic"] = "empty"
	}
	if r.IconIndex != nil && (*r.IconIndex < 0 || *r.IconIndex >= AvatarCount) {
		missing["iconIndex"] = "out of range"
	}
	if len(missing) > 0 {
		return skerr.WithDetails(skerr.ErrInvalidInput, missing)
	}
	return nil
}

// IconPtr returns a pointer to i for use as Record.IconIndex.
func IconPtr(i int) *int {
	return &i
}
