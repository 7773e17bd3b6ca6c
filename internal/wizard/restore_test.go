package wizard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

func restoredInfo() backend.WalletInfo {
	return backend.WalletInfo{WalletID: "w-restored", Address: "tb1qrestored"}
}

func TestRestoreWizard_WordGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    Mode
		input   string
		allowed bool
	}{
		{"empty", ModeClassic, "", false},
		{"eleven words", ModeClassic, strings.Repeat("abandon ", 11), false},
		{"thirteen words", ModeClassic, strings.Repeat("abandon ", 13), false},
		{"twelve identical words", ModeClassic, strings.TrimSpace(strings.Repeat("abandon ", 12)), true},
		{"twelve words not in any wordlist", ModeClassic, "a b c d e f g h i j k l", true},
		{"twelve words with odd spacing", ModeClassic, "  zoo\tzoo zoo\nzoo zoo zoo zoo zoo zoo zoo zoo   zoo ", true},
		{"gamified eleven words", ModeGamified, strings.Repeat("abandon ", 11), false},
		{"gamified thirteen words", ModeGamified, strings.Repeat("abandon ", 13), false},
		{"gamified twenty-four words", ModeGamified, strings.Repeat("abandon ", 24), false},
		{"gamified twelve words", ModeGamified, phrase12, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeBackend{info: restoredInfo()}
			w := NewRestoreWizard(newStore(t), api, tc.mode, testOptions(nil))

			setErr := w.SetPhrase(tc.input)
			if tc.mode == ModeGamified && !tc.allowed {
				require.ErrorIs(t, setErr, skerr.ErrInvalidWordCount)
			} else {
				require.NoError(t, setErr)
			}
			err := w.Restore(context.Background())

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, RestoreCustomize, w.Step())
				assert.Equal(t, int32(1), api.calls.Load())
			} else {
				require.ErrorIs(t, err, skerr.ErrInvalidWordCount)
				assert.Equal(t, RestoreInput, w.Step())
				assert.Zero(t, api.calls.Load())
			}
		})
	}
}

func TestRestoreWizard_ClassicHappyPath(t *testing.T) {
	t.Parallel()
	store := newStore(t, wallet.NewRecord("w-1", "tb1q1", phrase12+" a", "Skibidi Stash", nil, fixedNow))
	api := &fakeBackend{info: restoredInfo()}
	w := NewRestoreWizard(store, api, ModeClassic, testOptions(nil))
	ctx := context.Background()

	require.NoError(t, w.SetPhrase("1. Abandon 2. abandon 3. abandon 4. abandon 5. abandon 6. abandon\n"+
		"7. abandon 8. abandon 9. abandon 10. abandon 11. abandon 12. about"))
	assert.Equal(t, phrase12, w.Phrase())
	assert.False(t, w.ChecksumWarning())

	require.NoError(t, w.Restore(ctx))
	assert.Equal(t, []string{phrase12}, api.phrases)

	// One wallet stored, so the rotation offers the second themed name.
	assert.Equal(t, "Rizz Reserve", w.SuggestedName())

	rec, err := w.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, RestoreSuccess, w.Step())
	assert.Equal(t, "Rizz Reserve", rec.Name)
	assert.Equal(t, "w-restored", rec.ID)
	assert.Equal(t, phrase12, rec.Mnemonic)
	assert.Equal(t, 2, store.Len())
}

func TestRestoreWizard_Customize(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	w := NewRestoreWizard(store, &fakeBackend{info: restoredInfo()}, ModeClassic, testOptions(nil))
	ctx := context.Background()

	require.ErrorIs(t, w.Customize("early", 0), skerr.ErrInvalidTransition)

	require.NoError(t, w.SetPhrase(phrase12))
	require.NoError(t, w.Restore(ctx))

	require.ErrorIs(t, w.Customize(" ", 0), skerr.ErrEmptyName)
	require.ErrorIs(t, w.Customize("Mine", 99), skerr.ErrInvalidInput)
	require.NoError(t, w.Customize("  My   Stack ", 5))

	rec, err := w.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Stack", rec.Name)
	assert.Equal(t, 5, rec.Icon())
}

func TestRestoreWizard_FailureReturnsToInput(t *testing.T) {
	t.Parallel()
	alerter := &fakeAlerter{}
	api := &fakeBackend{err: &backend.APIError{Code: backend.CodeInvalidMnemonic, Message: "Invalid mnemonic"}}
	w := NewRestoreWizard(newStore(t), api, ModeClassic, testOptions(alerter))

	require.NoError(t, w.SetPhrase(phrase12))
	err := w.Restore(context.Background())
	require.ErrorIs(t, err, skerr.ErrInvalidMnemonic)

	assert.Equal(t, RestoreInput, w.Step())
	assert.Equal(t, 1, alerter.count())
	assert.Equal(t, phrase12, w.Phrase(), "input is kept for correction")
}

func TestRestoreWizard_Gamified(t *testing.T) {
	t.Parallel()
	api := &fakeBackend{info: restoredInfo()}
	w := NewRestoreWizard(newStore(t), api, ModeGamified, testOptions(nil))
	ctx := context.Background()
	words := strings.Fields(phrase12)

	assert.Equal(t, ModeGamified, w.Mode())

	for i, word := range words[:11] {
		require.NoError(t, w.SetWord(i, strings.ToUpper(word)))
	}
	filled, total := w.Progress()
	assert.Equal(t, 11, filled)
	assert.Equal(t, 12, total)
	require.ErrorIs(t, w.Restore(ctx), skerr.ErrInvalidWordCount)

	require.NoError(t, w.SetWord(11, "abou"))
	assert.Contains(t, w.Suggest(11, 5), "about")
	require.NoError(t, w.SetWord(11, "about"))

	require.ErrorIs(t, w.SetWord(12, "extra"), skerr.ErrInvalidInput)
	require.ErrorIs(t, w.SetWord(-1, "extra"), skerr.ErrInvalidInput)

	require.NoError(t, w.Restore(ctx))
	assert.Equal(t, []string{phrase12}, api.phrases)
}

func TestRestoreWizard_GamifiedPaste(t *testing.T) {
	t.Parallel()
	w := NewRestoreWizard(newStore(t), &fakeBackend{info: restoredInfo()}, ModeGamified, testOptions(nil))

	require.NoError(t, w.SetPhrase(phrase12))
	assert.Equal(t, phrase12, w.Phrase())

	err := w.SetPhrase(phrase12 + " extra words")
	require.ErrorIs(t, err, skerr.ErrInvalidWordCount)
	assert.Equal(t, phrase12, w.Phrase(), "a rejected paste leaves the board unchanged")

	filled, total := w.Progress()
	assert.Equal(t, total, filled)
}

func TestRestoreWizard_SetWordNeedsGamifiedMode(t *testing.T) {
	t.Parallel()
	w := NewRestoreWizard(newStore(t), &fakeBackend{}, ModeClassic, testOptions(nil))
	require.ErrorIs(t, w.SetWord(0, "abandon"), skerr.ErrInvalidTransition)
}

func TestRestoreWizard_ChecksumWarning(t *testing.T) {
	t.Parallel()
	w := NewRestoreWizard(newStore(t), &fakeBackend{}, ModeClassic, testOptions(nil))

	require.NoError(t, w.SetPhrase(strings.TrimSpace(strings.Repeat("abandon ", 12))))
	assert.True(t, w.ChecksumWarning())

	require.NoError(t, w.SetPhrase("abandon"))
	assert.False(t, w.ChecksumWarning(), "word count errors take precedence")
}

func TestRestoreWizard_DuplicateConflict(t *testing.T) {
	t.Parallel()
	existing := wallet.NewRecord("w-restored", "tb1qrestored", phrase12, "Already Here", nil, fixedNow)
	store := newStore(t, existing)
	w := NewRestoreWizard(store, &fakeBackend{info: restoredInfo()}, ModeClassic, testOptions(nil))
	ctx := context.Background()

	require.NoError(t, w.SetPhrase(phrase12))
	require.NoError(t, w.Restore(ctx))

	_, err := w.Finish(ctx)
	require.ErrorIs(t, err, skerr.ErrWalletExists)
	assert.Equal(t, RestoreCustomize, w.Step())
	assert.Equal(t, 1, store.Len())

	// Finishing again hits the same guard; the list never grows.
	_, err = w.Finish(ctx)
	require.ErrorIs(t, err, skerr.ErrWalletExists)
	assert.Equal(t, 1, store.Len())

	rec, err := w.Resolve(ctx, ConflictClearAll)
	require.NoError(t, err)
	assert.Equal(t, RestoreSuccess, w.Step())
	assert.Equal(t, []wallet.Record{rec}, store.List())
}

func TestRestoreWizard_Abandon(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	w := NewRestoreWizard(store, &fakeBackend{info: restoredInfo()}, ModeClassic, testOptions(nil))
	ctx := context.Background()

	require.NoError(t, w.SetPhrase(phrase12))
	require.NoError(t, w.Restore(ctx))
	w.Abandon()

	assert.Equal(t, RestoreAbandoned, w.Step())
	assert.Empty(t, w.Phrase())
	_, ok := w.Info()
	assert.False(t, ok)
	_, err := w.Finish(ctx)
	require.ErrorIs(t, err, skerr.ErrInvalidTransition)
	assert.Zero(t, store.Len())
}

func TestResolve_UnknownChoice(t *testing.T) {
	t.Parallel()
	_, err := resolve(newStore(t), wallet.Record{}, Conflict(7))
	require.ErrorIs(t, err, skerr.ErrInvalidInput)
}
