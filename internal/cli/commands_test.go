package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "version", "-o", "json")
	require.NoError(t, err)
	info := decode[map[string]any](t, stdout)
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}

func TestWalletList_Empty(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "wallet", "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No wallets yet")

	stdout, _, err = env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decode[[]walletView](t, stdout))
}

func TestCommandsWithoutWallet(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range [][]string{{"balance"}, {"history"}, {"receive"}, {"send", "--to", "tb1q", "--amount", "1", "--yes"}} {
		t.Run(args[0], func(t *testing.T) {
			_, _, err := env.run(t, args...)
			require.ErrorIs(t, err, skerr.ErrNoWalletSelected)
			assert.Equal(t, skerr.ExitNotFound, ExitCode(err))
		})
	}
}

func TestCreateBalanceHistoryDelete(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "wallet", "create", "--name", "Sigma Stash", "--icon", "2", "--yes", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Your recovery phrase")
	assert.Contains(t, stdout, "Saved Sigma Stash")

	stdout, _, err = env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]walletView](t, stdout)
	require.Len(t, list, 1)
	assert.Equal(t, "Sigma Stash", list[0].Name)
	assert.Equal(t, 2, list[0].Icon)
	assert.NotContains(t, stdout, "mnemonic")

	stdout, _, err = env.run(t, "balance", "-o", "json")
	require.NoError(t, err)
	bal := decode[balanceResult](t, stdout)
	assert.Equal(t, int64(testFaucet), bal.Total)
	assert.InDelta(t, testPriceUSD, bal.Price.USD, 0.001)
	assert.InDelta(t, 30.0, bal.USD, 0.001)

	stdout, _, err = env.run(t, "balance", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "50,000 sats")
	assert.Contains(t, stdout, "$30.00")

	stdout, _, err = env.run(t, "history", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "+50,000 sats")
	assert.Contains(t, stdout, "confirmed")

	stdout, _, err = env.run(t, "wallet", "delete", list[0].ID, "--yes", "-o", "json")
	require.NoError(t, err)
	res := decode[map[string]string](t, stdout)
	assert.Equal(t, "onboarding", res["route"])
}

func TestWalletCreate_BackupDeclined(t *testing.T) {
	env := newTestEnv(t)
	withPrompts(t, false, "", "0")

	_, _, err := env.run(t, "wallet", "create", "-o", "text")
	require.ErrorIs(t, err, skerr.ErrInvalidInput)

	stdout, _, err := env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decode[[]walletView](t, stdout))
}

func TestWalletCreate_PromptsForNameAndIcon(t *testing.T) {
	env := newTestEnv(t)
	asked := withPrompts(t, true, "", "5")

	_, _, err := env.run(t, "wallet", "create", "-o", "json")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]walletView](t, stdout)
	require.Len(t, list, 1)
	assert.Equal(t, wallet.ThemedNames[0], list[0].Name)
	assert.Equal(t, 5, list[0].Icon)
	assert.Contains(t, (*asked)[0], wallet.ThemedNames[0])
}

func TestWalletRestore_DuplicateGuard(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "First", "--yes")
	require.NoError(t, err)

	// --yes cancels on a duplicate.
	_, _, err = env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "Second", "--yes")
	require.ErrorIs(t, err, skerr.ErrWalletExists)
	assert.Equal(t, skerr.ExitConflict, ExitCode(err))

	// Clearing all keeps exactly the restored wallet.
	_, _, err = env.run(t, "wallet", "create", "--name", "Other", "--yes")
	require.NoError(t, err)
	withPrompts(t, true, "a")
	_, _, err = env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "Again", "--icon", "1")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]walletView](t, stdout)
	require.Len(t, list, 1)
	assert.Equal(t, "Again", list[0].Name)
}

func TestWalletRestore_Gamified(t *testing.T) {
	env := newTestEnv(t)

	words := strings.Fields(testPhrase)
	answers := []string{"abandonn", words[0]}
	answers = append(answers, words[1:]...)
	asked := withPrompts(t, true, answers...)

	_, stderr, err := env.run(t, "wallet", "restore", "--gamified", "--name", "Rizz Reserve", "--icon", "0", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Did you mean: abandon")
	assert.Len(t, *asked, wallet.WordCount+1)

	stdout, _, err := env.run(t, "wallet", "show", "Rizz Reserve", "--reveal", "-o", "json")
	require.NoError(t, err)
	shown := decode[map[string]any](t, stdout)
	assert.Equal(t, testPhrase, shown["mnemonic"])
}

func TestWalletRestore_WrongWordCount(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "wallet", "restore", "--phrase", "abandon abandon abandon", "--yes")
	require.ErrorIs(t, err, skerr.ErrInvalidWordCount)
}

func TestWalletFlagSelectsByName(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "create", "--name", "A", "--yes")
	require.NoError(t, err)
	_, _, err = env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "B", "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "--wallet", "b", "balance", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "B", decode[balanceResult](t, stdout).Wallet.Name)

	_, _, err = env.run(t, "--wallet", "missing", "balance")
	require.ErrorIs(t, err, skerr.ErrWalletNotFound)
}

func TestWalletRestore_SecondWalletNamesFlag(t *testing.T) {
	env := newTestEnv(t)
	_, stderr, err := env.run(t, "wallet", "create", "--name", "A", "--yes", "-o", "text")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "--wallet")

	_, stderr, err = env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "B", "--yes", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stderr, `--wallet "B"`)
}

func TestSendAndReceive(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "Payer", "--yes")
	require.NoError(t, err)
	_, _, err = env.run(t, "wallet", "create", "--name", "Payee", "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "--wallet", "Payee", "receive", "-o", "json")
	require.NoError(t, err)
	payee := decode[map[string]string](t, stdout)["address"]
	require.NotEmpty(t, payee)

	stdout, _, err = env.run(t, "--wallet", "Payer", "send", "--to", payee, "--amount", "4000", "--yes", "-o", "json")
	require.NoError(t, err)
	assert.NotEmpty(t, decode[map[string]any](t, stdout)["txid"])

	stdout, _, err = env.run(t, "--wallet", "Payee", "balance", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, int64(testFaucet+4000), decode[balanceResult](t, stdout).Total)

	png := filepath.Join(t.TempDir(), "address.png")
	_, _, err = env.run(t, "--wallet", "Payee", "receive", "--png", png, "-o", "text")
	require.NoError(t, err)
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSend_Cancelled(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "restore", "--phrase", testPhrase, "--yes")
	require.NoError(t, err)
	withPrompts(t, false)

	_, _, err = env.run(t, "send", "--to", "tb1qsomewhere", "--amount", "10")
	require.ErrorIs(t, err, skerr.ErrInvalidInput)
}

func TestLightningInvoiceAndPay(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "Payer", "--yes")
	require.NoError(t, err)
	_, _, err = env.run(t, "wallet", "create", "--name", "Payee", "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "--wallet", "Payee", "lightning", "invoice", "--amount", "2100", "--memo", "coffee", "-o", "json")
	require.NoError(t, err)
	inv := decode[map[string]any](t, stdout)
	req, ok := inv["payment_request"].(string)
	require.True(t, ok)

	stdout, _, err = env.run(t, "--wallet", "Payer", "ln", "pay", req, "--yes", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", decode[map[string]any](t, stdout)["status"])
}

func TestPriceCommand(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "price", "-o", "json")
	require.NoError(t, err)
	q := decode[map[string]any](t, stdout)
	assert.InDelta(t, testPriceUSD, q["usd"], 0.001)

	stdout, _, err = env.run(t, "price", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "$60,000.00")
}

func TestPriceCommand_Fallback(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Price.URL = "http://127.0.0.1:1"
		c.Backend.TimeoutSeconds = 1
	})

	stdout, _, err := env.run(t, "price", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(estimated)")
}

func TestWatch(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "restore", "--phrase", testPhrase, "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "watch", "--interval", "20ms", "--count", "2", "-o", "text")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.Count(stdout, "50,000 sats"), 3)
}

func TestWalletDelete_KeepsOthers(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "create", "--name", "A", "--yes")
	require.NoError(t, err)
	_, _, err = env.run(t, "wallet", "restore", "--phrase", testPhrase, "--name", "B", "--yes")
	require.NoError(t, err)

	withPrompts(t, false)
	_, _, err = env.run(t, "wallet", "delete", "A")
	require.ErrorIs(t, err, skerr.ErrInvalidInput)

	withPrompts(t, true)
	stdout, _, err := env.run(t, "wallet", "delete", "a", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "home", decode[map[string]string](t, stdout)["route"])

	stdout, _, err = env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]walletView](t, stdout)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Name)
}

func TestWalletClear(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "wallet", "create", "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "wallet", "clear", "--yes", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted 1 wallets")
	assert.Contains(t, stdout, "No wallets left")
}

func TestBoltStorageDriver(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.Storage.Driver = config.StorageDriverBolt })

	_, _, err := env.run(t, "wallet", "create", "--name", "Bolted", "--yes")
	require.NoError(t, err)

	// A second invocation reopens the database, so the first must have closed it.
	stdout, _, err := env.run(t, "wallet", "list", "-o", "json")
	require.NoError(t, err)
	list := decode[[]walletView](t, stdout)
	require.Len(t, list, 1)
	assert.Equal(t, "Bolted", list[0].Name)
	assert.NoFileExists(t, filepath.Join(env.home, "wallets.json"))
}

func TestConfigCommands(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCommand(t, "--home", home, "config", "init", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized")
	assert.FileExists(t, config.Path(home))

	_, _, err = executeCommand(t, "--home", home, "config", "init")
	require.Error(t, err)

	_, _, err = executeCommand(t, "--home", home, "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = executeCommand(t, "--home", home, "config", "get", "backend.url", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackendURL, strings.TrimSpace(stdout))

	_, _, err = executeCommand(t, "--home", home, "config", "get", "backend.nope")
	require.ErrorIs(t, err, skerr.ErrNotFound)

	stdout, _, err = executeCommand(t, "--home", home, "config", "show", "-o", "json")
	require.NoError(t, err)
	tree := decode[map[string]any](t, stdout)
	assert.Contains(t, tree, "storage")
	assert.NotContains(t, stdout, "passphrase")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := executeCommand(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, stdout, "skibidi")
		})
	}

	_, _, err := executeCommand(t, "completion", "tcsh")
	require.Error(t, err)
}
