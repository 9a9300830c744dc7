package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

const defaultPasswordEnv = "KEEN_TRAY_PASSWORD"

func CreateRoutersCommand() *RoutersCommand {
	return &RoutersCommand{
		fs: flag.NewFlagSet("routers", flag.ExitOnError),
	}
}

// RoutersCommand lists the configured routers.
type RoutersCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (c *RoutersCommand) Name() string {
	return c.fs.Name()
}

func (c *RoutersCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg
	return nil
}

func (c *RoutersCommand) Run() error {
	out := c.ctx.out()
	if len(c.cfg.Routers) == 0 {
		fmt.Fprintln(out, "No routers configured.")
		return nil
	}

	for _, router := range c.cfg.Routers {
		networkIP := router.NetworkIP
		if networkIP == "" {
			networkIP = "-"
		}
		fmt.Fprintf(out, "%-15s %-30s login: %-10s network IP: %s\n", router.Name, router.Address, router.Login, networkIP)
		if len(router.KeenDNSURLs) > 0 {
			fmt.Fprintf(out, "%-15s KeenDNS: %s\n", "", strings.Join(router.KeenDNSURLs, ", "))
		}
	}
	return nil
}

func CreateAddRouterCommand() *AddRouterCommand {
	c := &AddRouterCommand{
		fs: flag.NewFlagSet("add-router", flag.ExitOnError),
	}
	c.fs.StringVar(&c.req.Name, "name", "", "Router name (unique)")
	c.fs.StringVar(&c.req.Address, "address", "", "Router address, e.g. 192.168.1.1 or https://my.keenetic.pro")
	c.fs.StringVar(&c.req.Login, "login", "admin", "Router login")
	c.fs.StringVar(&c.req.OriginalName, "original-name", "", "Name of the router to edit")
	c.fs.StringVar(&c.passwordEnv, "password-env", defaultPasswordEnv, "Environment variable holding the password (prompted for if unset)")
	return c
}

// AddRouterCommand adds a router or edits an existing one.
type AddRouterCommand struct {
	fs          *flag.FlagSet
	ctx         *AppContext
	cfg         *config.Config
	deps        *domain.AppDependencies
	req         service.RegisterRequest
	passwordEnv string
}

func (c *AddRouterCommand) Name() string {
	return c.fs.Name()
}

func (c *AddRouterCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.req.Name == "" || c.req.Address == "" {
		return fmt.Errorf("-name and -address are required")
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg
	c.deps = ctx.dependencies(cfg)

	if password := os.Getenv(c.passwordEnv); password != "" {
		c.req.Password = password
		return nil
	}
	fmt.Fprintf(ctx.out(), "Password for %s@%s: ", c.req.Login, c.req.Address)
	password, err := readPassword(ctx.in(), ctx.out())
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.req.Password = password
	return nil
}

func (c *AddRouterCommand) Run() error {
	router, err := service.NewRouterRegistration(c.deps).Register(context.Background(), c.cfg, c.req)
	if err != nil {
		return err
	}

	log.Infof("Router %q saved to %s", router.Name, c.cfg.Path())
	if router.NetworkIP == "" {
		log.Warnf("The LAN IP of %q could not be discovered; it will only be matched by its address", router.Name)
	}
	return nil
}

func CreateRemoveRouterCommand() *RemoveRouterCommand {
	c := &RemoveRouterCommand{
		fs: flag.NewFlagSet("remove-router", flag.ExitOnError),
	}
	c.fs.StringVar(&c.name, "name", "", "Router name")
	return c
}

// RemoveRouterCommand removes a router and its stored password.
type RemoveRouterCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies
	name string
}

func (c *RemoveRouterCommand) Name() string {
	return c.fs.Name()
}

func (c *RemoveRouterCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.name == "" {
		return fmt.Errorf("-name is required")
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if _, ok := cfg.FindRouter(c.name); !ok {
		return fmt.Errorf("router %q is not configured", c.name)
	}
	c.cfg = cfg
	c.deps = ctx.dependencies(cfg)
	return nil
}

func (c *RemoveRouterCommand) Run() error {
	if err := service.NewRouterRegistration(c.deps).Remove(c.cfg, c.name); err != nil {
		return err
	}
	log.Infof("Router %q removed", c.name)
	return nil
}
