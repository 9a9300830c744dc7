package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

func CreateWatchCommand() *WatchCommand {
	c := &WatchCommand{
		fs: flag.NewFlagSet("watch", flag.ExitOnError),
	}
	c.fs.IntVar(&c.intervalSeconds, "interval", 0, "Refresh interval in seconds (default: refresh_interval_seconds from the configuration)")
	return c
}

// WatchCommand re-runs router selection periodically and prints the state
// whenever it changes.
type WatchCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	intervalSeconds int
	interval        time.Duration

	state    *service.StateService
	previous string
}

func (c *WatchCommand) Name() string {
	return c.fs.Name()
}

func (c *WatchCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.intervalSeconds < 0 {
		return fmt.Errorf("-interval must be positive")
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}

	c.interval = cfg.General.RefreshInterval()
	if c.intervalSeconds > 0 {
		c.interval = time.Duration(c.intervalSeconds) * time.Second
	}
	c.deps = ctx.dependencies(cfg)
	c.state = service.NewStateService(c.deps)
	return nil
}

func (c *WatchCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRestartableRunner(RunnerConfig{
		Name:           "watch",
		RestartBackoff: c.interval,
		MaxBackoff:     5 * time.Minute,
	}, c.loop)
	if err := runner.Start(ctx); err != nil {
		return err
	}

	log.Infof("Watching every %v, press Ctrl+C to stop", c.interval)
	select {
	case <-ctx.Done():
	case <-runner.Done():
	}
	return runner.Stop()
}

func (c *WatchCommand) loop(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if err := c.poll(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll refreshes the state once and prints it if it differs from the
// previous poll. The configuration is re-read every time.
func (c *WatchCommand) poll(ctx context.Context) error {
	cfg, err := loadAndValidateConfigOrFail(c.ctx.ConfigPath)
	if err != nil {
		return err
	}

	snapshot, err := c.state.Refresh(ctx, cfg)
	if err != nil {
		return err
	}

	rendered := formatSnapshot(snapshot)
	if rendered == c.previous {
		log.Debugf("State unchanged")
		return nil
	}
	c.previous = rendered

	fmt.Fprintf(c.ctx.out(), "[%s]\n%s\n", time.Now().Format(time.TimeOnly), rendered)
	return nil
}
