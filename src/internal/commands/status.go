package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

func CreateStatusCommand() *StatusCommand {
	return &StatusCommand{
		fs: flag.NewFlagSet("status", flag.ExitOnError),
	}
}

// StatusCommand selects the active router once and prints its state.
type StatusCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies
}

func (c *StatusCommand) Name() string {
	return c.fs.Name()
}

func (c *StatusCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.deps = ctx.dependencies(cfg)
	return nil
}

func (c *StatusCommand) Run() error {
	snapshot, err := service.NewStateService(c.deps).Refresh(context.Background(), c.cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(c.ctx.out(), formatSnapshot(snapshot))
	return nil
}
