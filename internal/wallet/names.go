package wallet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// MaxNameLength bounds display names, counted in runes.
const MaxNameLength = 40

// ThemedNames are the default names offered after a restore.
var ThemedNames = []string{ //nolint:gochecknoglobals // fixed list
	"Skibidi Stash",
	"Rizz Reserve",
	"Sigma Savings",
	"Gyatt Vault",
	"Ohio Wallet",
	"Fanum Fund",
	"Mewing Money",
	"Aura Account",
}

// SuggestName picks a themed name not already in existing. The base name
// rotates with the number of wallets; collisions get " 2", " 3", ... appended.
func SuggestName(existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		taken[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	base := ThemedNames[len(existing)%len(ThemedNames)]
	if _, ok := taken[strings.ToLower(base)]; !ok {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s %d", base, i)
		if _, ok := taken[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

// CleanName trims and collapses whitespace in a user-entered name.
func CleanName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", skerr.ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", skerr.WithSuggestion(skerr.ErrInvalidInput,
			fmt.Sprintf("wallet names are limited to %d characters", MaxNameLength))
	}
	return name, nil
}
