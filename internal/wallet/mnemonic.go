package wallet

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// WordCount is the only accepted recovery phrase length.
const WordCount = 12

// MaxTypoDistance is the largest Levenshtein distance offered as a suggestion.
const MaxTypoDistance = 2

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// inlineNumberRegex matches "1. abandon 2. ability" pasted on one line
	inlineNumberRegex = regexp.MustCompile(`(^|\s)\d+[\.\)\:]\s*`)

	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// NormalizeMnemonicInput turns pasted or typed phrase text into lowercase
// words separated by single spaces. List numbering, bullets and commas are
// dropped.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = inlineNumberRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// ValidateWordCount requires exactly WordCount whitespace-separated tokens.
// Token content is not checked; the backend is the judge of validity.
func ValidateWordCount(phrase string) error {
	n := len(strings.Fields(phrase))
	if n != WordCount {
		return skerr.WithDetails(skerr.ErrInvalidWordCount, map[string]string{"words": fmt.Sprint(n)})
	}
	return nil
}

// ChecksumValid reports whether phrase passes the BIP39 wordlist and
// checksum checks. It is a hint for the user and never blocks a restore.
func ChecksumValid(phrase string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonicInput(phrase))
}

// IsValidWord checks if a word is in the BIP39 English word list.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(strings.TrimSpace(word)))
	return ok
}

// UnknownWords returns the positions of words not in the word list.
func UnknownWords(phrase string) []int {
	var out []int
	for i, w := range strings.Fields(NormalizeMnemonicInput(phrase)) {
		if !IsValidWord(w) {
			out = append(out, i)
		}
	}
	return out
}

// SuggestWords returns up to limit word list entries for a partially typed
// or misspelled word. Prefix matches come first in word list order, then
// near misses ordered by edit distance.
func SuggestWords(input string, limit int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || limit <= 0 {
		return nil
	}

	words := bip39.GetWordList()
	out := make([]string, 0, limit)
	seen := make(map[string]struct{})

	for _, w := range words {
		if strings.HasPrefix(w, input) {
			out = append(out, w)
			seen[w] = struct{}{}
			if len(out) == limit {
				return out
			}
		}
	}

	type near struct {
		word string
		dist int
	}
	var nearMisses []near
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		if d := levenshtein.ComputeDistance(input, w); d <= MaxTypoDistance {
			nearMisses = append(nearMisses, near{word: w, dist: d})
		}
	}
	sort.SliceStable(nearMisses, func(i, j int) bool { return nearMisses[i].dist < nearMisses[j].dist })

	for _, n := range nearMisses {
		out = append(out, n.word)
		if len(out) == limit {
			break
		}
	}
	return out
}

// GenerateMnemonic returns a new 12-word BIP39 phrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("generating entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}
