package cli

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/devbackend"
)

const (
	testPhrase   = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testFaucet   = 50_000
	testPriceUSD = 60_000.0
)

// testEnv is a data directory wired to a running dev backend.
type testEnv struct {
	home string
	url  string
	srv  *devbackend.Server
}

// newTestEnv starts a dev backend and writes a config pointing at it with
// wizard pauses disabled.
func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := devbackend.New(devbackend.Options{Faucet: testFaucet, PriceUSD: testPriceUSD})
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	env := &testEnv{home: t.TempDir(), url: "http://" + ln.Addr().String(), srv: srv}

	cfg := config.Defaults()
	cfg.Home = env.home
	cfg.Backend.URL = env.url
	cfg.Backend.TimeoutSeconds = 5
	cfg.Price.URL = env.url
	cfg.Wizard.GenerateDelayMs = 0
	cfg.Wizard.CompleteDelayMs = 0
	cfg.Session.FocusDebounceMs = 1
	cfg.Logging.Level = "off"
	for _, fn := range mutate {
		fn(cfg)
	}
	require.NoError(t, config.Save(cfg, config.Path(env.home)))
	return env
}

// run executes the CLI against env with args and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeCommand(t, append([]string{"--home", e.home}, args...)...)
}

// executeCommand runs the root command the way Execute does and resets all
// flag state afterwards.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer resetCommands()

	cmd, err := rootCmd.ExecuteC()
	cleanup(cmd)
	return stdout.String(), stderr.String(), err
}

// resetCommands restores every flag to its default and drops contexts left
// on the command tree by the previous run.
func resetCommands() {
	walkCommands(rootCmd, func(c *cobra.Command) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		c.SetContext(nil) //nolint:staticcheck // clearing the context cobra copied down
	})
	rootCmd.SetArgs(nil)
}

// withPrompts replaces interactive input for the test. Lines are returned in
// order; confirm answers every yes/no question.
func withPrompts(t *testing.T, confirm bool, lines ...string) *[]string {
	t.Helper()
	origLine := promptLineFn
	origConfirm := promptConfirmFn
	origSecret := promptSecretFn
	t.Cleanup(func() {
		promptLineFn = origLine
		promptConfirmFn = origConfirm
		promptSecretFn = origSecret
	})

	var asked []string
	queue := append([]string(nil), lines...)
	promptLineFn = func(prompt string) (string, error) {
		asked = append(asked, prompt)
		if len(queue) == 0 {
			return "", nil
		}
		next := queue[0]
		queue = queue[1:]
		return next, nil
	}
	promptConfirmFn = func(question string) bool {
		asked = append(asked, question)
		return confirm
	}
	promptSecretFn = func(string) ([]byte, error) {
		return []byte("correct horse battery staple"), nil
	}
	return &asked
}
