package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/keen-tray/src/internal/api"
	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address of the local API (default: api_listen_addr from the configuration)")
	return c
}

// ServeCommand runs the localhost JSON API until interrupted. The
// configuration file is watched and reloaded on change.
type ServeCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	listenAddr string

	handler   *api.Handler
	server    *api.Server
	watcher   *config.Watcher
	apiRunner *RestartableRunner
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.listenAddr == "" {
		c.listenAddr = cfg.General.APIListenAddr
	}
	if c.listenAddr == "" {
		c.listenAddr = config.DefaultAPIListenAddr
	}

	c.deps = ctx.dependencies(cfg)
	c.handler = api.NewHandler(cfg, c.deps, service.NewStateService(c.deps))
	c.server = api.NewServer(c.listenAddr, api.NewRouter(c.handler))
	return nil
}

func (c *ServeCommand) Run() error {
	log.Infof("Starting keen-tray API server on %s", c.listenAddr)
	log.Infof("Configuration loaded from: %s", c.cfg.Path())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	watcher, err := config.NewWatcher(c.cfg.Path(), c.cfg, c.onConfigChange)
	if err != nil {
		log.Warnf("Configuration changes will not be picked up automatically: %v", err)
	} else if err := watcher.Start(); err != nil {
		log.Warnf("Configuration changes will not be picked up automatically: %v", err)
	} else {
		c.watcher = watcher
	}

	c.apiRunner = NewRestartableRunner(RunnerConfig{
		Name:           "API server",
		RestartBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
	}, func(context.Context) error {
		return c.server.Start()
	})
	if err := c.apiRunner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	log.Infof("Send SIGHUP to reload configuration")
	for sig := range sigChan {
		switch sig {
		case syscall.SIGHUP:
			log.Infof("Received SIGHUP signal, reloading configuration...")
			cfg, err := loadAndValidateConfigOrFail(c.cfg.Path())
			if err != nil {
				log.Errorf("Failed to reload configuration: %v", err)
				continue
			}
			c.onConfigChange(cfg)

		case syscall.SIGINT, syscall.SIGTERM:
			log.Infof("Received signal %v, shutting down...", sig)
			return c.shutdown()
		}
	}
	return nil
}

// onConfigChange serves cfg and rebuilds the dependencies, so request
// timeout, resolver and DNS server changes apply without a restart.
func (c *ServeCommand) onConfigChange(cfg *config.Config) {
	log.Infof("Configuration reloaded: %d router(s)", len(cfg.Routers))
	c.handler.Reload(cfg, c.ctx.dependencies(cfg))
}

// shutdown performs graceful shutdown of all components.
func (c *ServeCommand) shutdown() error {
	if c.watcher != nil {
		c.watcher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.server.Stop(shutdownCtx); err != nil {
		log.Errorf("Error during API server shutdown: %v", err)
	}

	if err := c.apiRunner.Stop(); err != nil {
		log.Errorf("Failed to stop API server runner: %v", err)
	}

	log.Infof("Server stopped")
	return nil
}
