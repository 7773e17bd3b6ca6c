package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// CreateStep is a step of the creation wizard.
type CreateStep int

// Creation steps. Done and Abandoned are terminal.
const (
	CreateName CreateStep = iota
	CreateGenerating
	CreateBackup
	CreateComplete
	CreateDone
	CreateAbandoned
)

func (s CreateStep) String() string {
	switch s {
	case CreateName:
		return "name"
	case CreateGenerating:
		return "generating"
	case CreateBackup:
		return "backup"
	case CreateComplete:
		return "complete"
	case CreateDone:
		return "done"
	case CreateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// CreateWizard runs name → generating → backup → complete.
type CreateWizard struct {
	store *wallet.Store
	api   Creator
	opts  Options

	mu      sync.Mutex
	step    CreateStep
	name    string
	icon    int
	info    *backend.WalletInfo
	pending *wallet.Record
}

// NewCreateWizard starts a creation wizard at the name step.
func NewCreateWizard(store *wallet.Store, api Creator, opts Options) *CreateWizard {
	return &CreateWizard{store: store, api: api, opts: opts}
}

// Step returns the current step.
func (w *CreateWizard) Step() CreateStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SuggestedName returns a themed name not used by any stored wallet.
func (w *CreateWizard) SuggestedName() string {
	return wallet.SuggestName(w.store.Names())
}

// SetName records the label and avatar chosen on the name step.
func (w *CreateWizard) SetName(name string, icon int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != CreateName {
		return transitionError(w.step, "set name")
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

// Generate asks the backend for a new wallet. Success advances to backup
// after the generate delay; failure alerts and returns to name.
func (w *CreateWizard) Generate(ctx context.Context) error {
	w.mu.Lock()
	if w.step != CreateName {
		defer w.mu.Unlock()
		return transitionError(w.step, "generate")
	}
	if w.name == "" {
		w.mu.Unlock()
		return skerr.ErrEmptyName
	}
	w.step = CreateGenerating
	w.mu.Unlock()

	info, err := w.api.CreateWallet(ctx)
	if err != nil {
		w.opts.alert(err)
		w.mu.Lock()
		if w.step == CreateGenerating {
			w.step = CreateName
		}
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	if w.step != CreateGenerating {
		// Abandoned while the request was running.
		w.mu.Unlock()
		return nil
	}
	w.info = info
	w.mu.Unlock()

	pause(ctx, w.opts.Timing.GenerateDelay)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == CreateGenerating {
		w.step = CreateBackup
	}
	return nil
}

// Words returns the generated recovery phrase split into words.
func (w *CreateWizard) Words() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.info == nil {
		return nil
	}
	return strings.Fields(w.info.Mnemonic)
}

// Info returns the generated wallet, if any.
func (w *CreateWizard) Info() (backend.WalletInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.info == nil {
		return backend.WalletInfo{}, false
	}
	return *w.info, true
}

// ConfirmBackup records that the user saved the phrase.
func (w *CreateWizard) ConfirmBackup() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != CreateBackup {
		return transitionError(w.step, "confirm backup")
	}
	w.step = CreateComplete
	return nil
}

// Finish saves the wallet. A duplicate id returns *wallet.ConflictError
// and the wizard stays on complete until Resolve is called.
func (w *CreateWizard) Finish(ctx context.Context) (wallet.Record, error) {
	w.mu.Lock()
	if w.step != CreateComplete {
		defer w.mu.Unlock()
		return wallet.Record{}, transitionError(w.step, "finish")
	}
	icon := w.icon
	rec := wallet.NewRecord(w.info.WalletID, w.info.Address, w.info.Mnemonic, w.name, &icon, w.opts.now())
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

	w.done(ctx)
	return rec, nil
}

// Resolve answers a duplicate wallet prompt raised by Finish.
func (w *CreateWizard) Resolve(ctx context.Context, choice Conflict) (wallet.Record, error) {
	w.mu.Lock()
	if w.step != CreateComplete || w.pending == nil {
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

	w.done(ctx)
	return rec, nil
}

// Abandon leaves the wizard without saving and forgets the phrase.
func (w *CreateWizard) Abandon() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == CreateDone {
		return
	}
	w.step = CreateAbandoned
	w.info = nil
	w.pending = nil
}

func (w *CreateWizard) done(ctx context.Context) {
	pause(ctx, w.opts.Timing.CompleteDelay)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = CreateDone
	w.pending = nil
}
