package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

func CreateDNSCommand() *DNSCommand {
	return &DNSCommand{
		fs: flag.NewFlagSet("dns", flag.ExitOnError),
	}
}

// DNSCommand prints the System DNS proxy upstreams of the active router.
type DNSCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies
}

func (c *DNSCommand) Name() string {
	return c.fs.Name()
}

func (c *DNSCommand) Init(args []string, ctx *AppContext) error {
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

func (c *DNSCommand) Run() error {
	ctx := context.Background()

	state, _, err := service.NewPipeline(c.deps).Run(ctx, c.cfg.Routers)
	if err != nil {
		return err
	}
	if state == nil {
		return kerrors.NewNoActiveRouterError("no reachable router")
	}

	dnsService := service.NewDNSService(c.deps)
	servers, err := dnsService.GetDNSServers(ctx, state.Target())
	if err != nil {
		return err
	}

	out := c.ctx.out()
	if len(servers) == 0 {
		fmt.Fprintf(out, "Router %q has no System DNS proxy upstreams\n", state.Router.Name)
		return nil
	}
	fmt.Fprintf(out, "System DNS proxy upstreams of %q:\n", state.Router.Name)
	fmt.Fprint(out, dnsService.FormatDNSServers(servers))
	return nil
}
