package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

func TestFindWallet(t *testing.T) {
	t.Parallel()
	storage := wallet.NewMemoryStorage()
	require.NoError(t, storage.Write([]wallet.Record{
		{ID: "w_1", Name: "Sigma Stash", Address: "tb1qa", Mnemonic: testPhrase},
		{ID: "w_2", Name: "w_1", Address: "tb1qb", Mnemonic: testPhrase + " x"},
	}))
	store, err := wallet.OpenStore(storage)
	require.NoError(t, err)

	tests := []struct {
		ref    string
		wantID string
	}{
		{"w_1", "w_1"},
		{"sigma stash", "w_1"},
		{"W_2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			rec, err := findWallet(store, tt.ref)
			if tt.wantID == "" {
				require.ErrorIs(t, err, skerr.ErrWalletNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, rec.ID)
		})
	}
}

func TestPriceLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "price unavailable", priceLabel(0, cache.Quote{}))
	assert.Equal(t, "$12.50", priceLabel(12.5, cache.Quote{USD: 50000}))
	assert.Equal(t, "$12.50 (estimated)", priceLabel(12.5, cache.Quote{USD: 65000, Fallback: true}))
}

func TestShortTxID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", shortTxID("abc"))
	assert.Equal(t, "01234567…89abcdef", shortTxID("0123456789abcdef0123456789abcdef"))
}

func TestEnrichParentLong(t *testing.T) {
	t.Parallel()
	root := &cobra.Command{Use: "root"}
	parent := &cobra.Command{Use: "parent", Long: "Parent.\n"}
	parent.AddCommand(
		&cobra.Command{Use: "one", Short: "First", Aliases: []string{"1"}, Run: func(*cobra.Command, []string) {}},
		&cobra.Command{Use: "two", Short: "Second", Hidden: true, Run: func(*cobra.Command, []string) {}},
	)
	root.AddCommand(parent)

	walkCommands(root, enrichParentLong)

	assert.True(t, strings.HasPrefix(parent.Long, "Parent.\n\nCommands:\n"))
	assert.Contains(t, parent.Long, "one (1)")
	assert.Contains(t, parent.Long, "First")
	assert.NotContains(t, parent.Long, "Second")
	assert.Contains(t, parent.Long, "Run 'root parent <command> --help'")
	assert.Empty(t, root.Long)
}

func TestConfigTree(t *testing.T) {
	t.Parallel()
	tree, err := configTree(config.Defaults())
	require.NoError(t, err)

	backend, ok := tree["backend"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, config.DefaultBackendURL, backend["url"])
}

func TestUnknownWordHint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		phrase string
		want   string
	}{
		{testPhrase, "Check the word order."},
		{"abandon abandonn abandon", "Word 2 is not in the word list."},
		{"zzz abandon qqq", "Words 1, 3 are not in the word list."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unknownWordHint(tt.phrase))
	}
}
