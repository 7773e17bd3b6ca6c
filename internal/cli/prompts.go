package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// Prompt hooks, replaced in tests.
//
//nolint:gochecknoglobals // test seams for interactive input
var (
	promptSecretFn  = promptSecret
	promptLineFn    = promptLine
	promptConfirmFn = promptConfirm
)

//nolint:gochecknoglobals // stdin is read through one buffered reader
var (
	stdinOnce   sync.Once
	stdinReader *bufio.Reader
)

func stdin() *bufio.Reader {
	stdinOnce.Do(func() { stdinReader = bufio.NewReader(os.Stdin) })
	return stdinReader
}

// promptSecret prompts for hidden input.
func promptSecret(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	fd := int(os.Stdin.Fd()) //nolint:gosec // stdin fd fits in int
	if !term.IsTerminal(fd) {
		line, err := promptLine("")
		return []byte(line), err
	}

	secret, err := term.ReadPassword(fd)
	outln(os.Stderr) // Add newline after hidden input
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	return secret, nil
}

// promptLine prints prompt to stderr and reads one trimmed line.
func promptLine(prompt string) (string, error) {
	if prompt != "" {
		out(os.Stderr, "%s", prompt)
	}
	line, err := stdin().ReadString('\n')
	if err != nil && line == "" {
		return "", skerr.WithSuggestion(skerr.ErrInvalidInput, "no input provided")
	}
	return strings.TrimSpace(line), nil
}

// promptConfirm asks a yes/no question. Anything but y or yes is no.
func promptConfirm(question string) bool {
	answer, err := promptLineFn(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// promptDefault reads a line, returning def for an empty answer.
func promptDefault(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	answer, err := promptLineFn(prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
