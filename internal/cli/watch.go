package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/session"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	watchInterval time.Duration
	watchCount    int
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the balance up to date until interrupted",
	Long: `Show the selected wallet and refresh it on a fixed interval until you
press Ctrl-C. Fetch failures are reported and watching continues.

Example:
  skibidi watch
  skibidi watch --interval 10s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "refresh interval (default: session.watch_interval_seconds)")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "stop after this many refreshes")
}

// watchView refreshes the controller and prints the result on every tick.
type watchView struct {
	cc     *CommandContext
	ctrl   *session.Controller
	cancel context.CancelFunc

	mu    sync.Mutex
	ticks int
}

func (v *watchView) FocusRegained(ctx context.Context) {
	if _, err := v.cc.Prices().Refresh(ctx); err != nil {
		v.cc.Log.Debug("price refresh: %v", err)
	}
	v.ctrl.FocusRegained(ctx)
	v.ctrl.Wait()
	v.print()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.ticks++
	if watchCount > 0 && v.ticks >= watchCount {
		v.cancel()
	}
}

func (v *watchView) print() {
	state := v.ctrl.Snapshot()
	if state.Selected == nil {
		output.Info(v.cc.Out, "No wallet selected.")
		return
	}
	if v.cc.Fmt.IsJSON() {
		_ = v.cc.Fmt.Print(state)
		return
	}
	out(v.cc.Out, "[%s] %s  %s  %s\n",
		time.Now().Format(time.TimeOnly),
		state.Selected.Name,
		output.Sats(state.Balance.Total),
		priceLabel(v.cc.Prices().ToUSD(state.Balance.Total), state.Price))
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	interval := watchInterval
	if interval <= 0 {
		interval = cc.Cfg.GetWatchInterval()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, err := cc.Controller(true)
	if err != nil {
		return err
	}
	if _, err = cc.Activate(ctx, ctrl); err != nil {
		if _, ok := ctrl.Selected(); !ok {
			return err
		}
		// Already alerted; keep watching.
		cc.Log.Error("initial fetch: %v", err)
	}
	if _, err = cc.Prices().Refresh(ctx); err != nil {
		cc.Log.Debug("price refresh: %v", err)
	}

	ctrl.Start(ctx)
	defer ctrl.Stop()

	view := &watchView{cc: cc, ctrl: ctrl, cancel: stop}
	view.print()

	poller, err := session.NewPoller(view, interval)
	if err != nil {
		return err
	}
	if err = poller.Start(ctx); err != nil {
		return err
	}
	cc.Log.Debug("watching every %s", interval)

	<-ctx.Done()
	if err = poller.Stop(); err != nil {
		cc.Log.Error("stopping poller: %v", err)
	}
	if !cc.Fmt.IsJSON() {
		outln(cc.Err)
	}
	return nil
}
