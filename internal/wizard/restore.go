package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// Mode selects how the phrase is entered.
type Mode int

// Entry modes.
const (
	// ModeClassic takes the phrase as free text.
	ModeClassic Mode = iota

	// ModeGamified takes one word at a time with wordlist suggestions.
	ModeGamified
)

func (m Mode) String() string {
	if m == ModeGamified {
		return "gamified"
	}
	return "classic"
}

// RestoreStep is a step of the restoration wizard.
type RestoreStep int

// Restoration steps. Success and Abandoned are terminal.
const (
	RestoreInput RestoreStep = iota
	RestoreRestoring
	RestoreCustomize
	RestoreSuccess
	RestoreAbandoned
)

func (s RestoreStep) String() string {
	switch s {
	case RestoreInput:
		return "input"
	case RestoreRestoring:
		return "restoring"
	case RestoreCustomize:
		return "customize"
	case RestoreSuccess:
		return "success"
	case RestoreAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// RestoreWizard runs input → restoring → customize → success.
type RestoreWizard struct {
	store *wallet.Store
	api   Restorer
	opts  Options
	mode  Mode

	mu        sync.Mutex
	step      RestoreStep
	phrase    string
	words     [wallet.WordCount]string
	info      *backend.WalletInfo
	suggested string
	name      string
	icon      int
	pending   *wallet.Record
}

// NewRestoreWizard starts a restoration wizard at the input step.
func NewRestoreWizard(store *wallet.Store, api Restorer, mode Mode, opts Options) *RestoreWizard {
	return &RestoreWizard{store: store, api: api, mode: mode, opts: opts}
}

// Mode returns the entry mode.
func (w *RestoreWizard) Mode() Mode {
	return w.mode
}

// Step returns the current step.
func (w *RestoreWizard) Step() RestoreStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SetPhrase sets the whole phrase. In gamified mode the words are spread
// over the word slots, so a pasted phrase fills the board; a paste without
// exactly WordCount words is rejected and the board is left as it was.
func (w *RestoreWizard) SetPhrase(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != RestoreInput {
		return transitionError(w.step, "set phrase")
	}

	normalized := wallet.NormalizeMnemonicInput(text)
	if w.mode == ModeClassic {
		w.phrase = normalized
		return nil
	}

	if err := wallet.ValidateWordCount(normalized); err != nil {
		return err
	}
	copy(w.words[:], strings.Fields(normalized))
	return nil
}

// SetWord fills slot i (zero-based) in gamified mode.
func (w *RestoreWizard) SetWord(i int, word string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != RestoreInput {
		return transitionError(w.step, "set word")
	}
	if w.mode != ModeGamified {
		return skerr.WithSuggestion(transitionError(w.step, "set word"), "word-by-word entry needs gamified mode")
	}
	if i < 0 || i >= wallet.WordCount {
		return skerr.WithDetails(skerr.ErrInvalidInput, map[string]string{"word": fmt.Sprint(i + 1)})
	}
	w.words[i] = strings.ToLower(strings.TrimSpace(word))
	return nil
}

// Suggest returns wordlist matches for the text in slot i.
func (w *RestoreWizard) Suggest(i, limit int) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= wallet.WordCount || w.words[i] == "" {
		return nil
	}
	return wallet.SuggestWords(w.words[i], limit)
}

// Progress reports how many word slots are filled.
func (w *RestoreWizard) Progress() (filled, total int) {
	phrase := w.Phrase()
	return len(strings.Fields(phrase)), wallet.WordCount
}

// Phrase returns the phrase as it would be submitted.
func (w *RestoreWizard) Phrase() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phraseLocked()
}

func (w *RestoreWizard) phraseLocked() string {
	if w.mode == ModeClassic {
		return w.phrase
	}
	words := make([]string, 0, wallet.WordCount)
	for _, word := range w.words {
		if word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, " ")
}

// ChecksumWarning is true for a 12-word phrase that fails the BIP39
// checksum. It never blocks restoration.
func (w *RestoreWizard) ChecksumWarning() bool {
	phrase := w.Phrase()
	if wallet.ValidateWordCount(phrase) != nil {
		return false
	}
	return !wallet.ChecksumValid(phrase)
}

// Restore submits the phrase. Anything other than exactly 12 words is
// refused before any request. Backend failure alerts and returns to input.
func (w *RestoreWizard) Restore(ctx context.Context) error {
	w.mu.Lock()
	if w.step != RestoreInput {
		defer w.mu.Unlock()
		return transitionError(w.step, "restore")
	}
	phrase := w.phraseLocked()
	if err := wallet.ValidateWordCount(phrase); err != nil {
		w.mu.Unlock()
		return err
	}
	w.step = RestoreRestoring
	w.mu.Unlock()

	info, err := w.api.RestoreWallet(ctx, phrase)
	if err != nil {
		w.opts.alert(err)
		w.mu.Lock()
		if w.step == RestoreRestoring {
			w.step = RestoreInput
		}
		w.mu.Unlock()
		return err
	}

	suggested := wallet.SuggestName(w.store.Names())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != RestoreRestoring {
		return nil
	}
	w.info = info
	w.suggested = suggested
	w.step = RestoreCustomize
	return nil
}

// Info returns the restored wallet, if any.
func (w *RestoreWizard) Info() (backend.WalletInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.info == nil {
		return backend.WalletInfo{}, false
	}
	return *w.info, true
}

// SuggestedName returns the themed name offered on the customize step.
func (w *RestoreWizard) SuggestedName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.suggested
}

// Customize sets the display name and avatar.
func (w *RestoreWizard) Customize(name string, icon int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != RestoreCustomize {
		return transitionError(w.step, "customize")
	}
	clean, err := wallet.CleanName(name)
	if err != nil {
		return err
	}
	if err := validIcon(icon); err != nil {
		return err
	}
	w.name, w.icon = clean, icon
	return nil
}

// Finish saves the restored wallet under the customized name, or the
// suggested one when Customize was skipped. A duplicate id returns
// *wallet.ConflictError and the wizard stays on customize.
func (w *RestoreWizard) Finish(ctx context.Context) (wallet.Record, error) {
	w.mu.Lock()
	if w.step != RestoreCustomize {
		defer w.mu.Unlock()
		return wallet.Record{}, transitionError(w.step, "finish")
	}
	name := w.name
	if name == "" {
		name = w.suggested
	}
	icon := w.icon
	rec := wallet.NewRecord(w.info.WalletID, w.info.Address, w.info.Mnemonic, name, &icon, w.opts.now())
	w.mu.Unlock()

	if err := w.store.Append(rec); err != nil {
		var conflict *wallet.ConflictError
		if errors.As(err, &conflict) {
			w.mu.Lock()
			w.pending = &rec
			w.mu.Unlock()
		} else {
			w.opts.alert(err)
		}
		return wallet.Record{}, err
	}

	w.succeed(ctx)
	return rec, nil
}

// Resolve answers a duplicate wallet prompt raised by Finish.
func (w *RestoreWizard) Resolve(ctx context.Context, choice Conflict) (wallet.Record, error) {
	w.mu.Lock()
	if w.step != RestoreCustomize || w.pending == nil {
		defer w.mu.Unlock()
		return wallet.Record{}, transitionError(w.step, "resolve conflict")
	}
	rec := *w.pending
	w.mu.Unlock()

	saved, err := resolve(w.store, rec, choice)
	if err != nil {
		return wallet.Record{}, err
	}
	if !saved {
		w.Abandon()
		return wallet.Record{}, nil
	}

	w.succeed(ctx)
	return rec, nil
}

// Abandon leaves the wizard without saving and forgets the phrase.
func (w *RestoreWizard) Abandon() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == RestoreSuccess {
		return
	}
	w.step = RestoreAbandoned
	w.phrase = ""
	w.words = [wallet.WordCount]string{}
	w.info = nil
	w.pending = nil
}

func (w *RestoreWizard) succeed(ctx context.Context) {
	pause(ctx, w.opts.Timing.CompleteDelay)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = RestoreSuccess
	w.pending = nil
}
