package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

func CreatePolicyCommand() *PolicyCommand {
	c := &PolicyCommand{
		fs: flag.NewFlagSet("policy", flag.ExitOnError),
	}
	c.fs.StringVar(&c.mac, "mac", "", "Client MAC address (with or without colons)")
	c.fs.StringVar(&c.set, "set", "", "Assign the named router policy")
	c.fs.BoolVar(&c.useDefault, "default", false, "Restore the default policy")
	c.fs.BoolVar(&c.block, "block", false, "Block the client")
	c.fs.StringVar(&c.choice, "choice", "", "Apply a menu entry id printed by the status command")
	return c
}

// PolicyCommand changes the policy of a client of the active router.
type PolicyCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	mac        string
	set        string
	useDefault bool
	block      bool
	choice     string

	action service.PolicyAction
}

func (c *PolicyCommand) Name() string {
	return c.fs.Name()
}

func (c *PolicyCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if err := c.parseAction(); err != nil {
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

func (c *PolicyCommand) parseAction() error {
	if c.choice != "" {
		mac, action, err := service.ParseChoiceID(c.choice)
		if err != nil {
			return err
		}
		c.mac, c.action = mac, action
		return nil
	}

	if c.mac == "" {
		return fmt.Errorf("-mac or -choice is required")
	}

	selected := 0
	if c.set != "" {
		selected++
		c.action = service.ActionSetPolicy(c.set)
	}
	if c.useDefault {
		selected++
		c.action = service.ActionDefault()
	}
	if c.block {
		selected++
		c.action = service.ActionBlock()
	}
	if selected != 1 {
		return fmt.Errorf("exactly one of -set, -default or -block is required")
	}
	return nil
}

func (c *PolicyCommand) Run() error {
	snapshot, err := service.NewStateService(c.deps).Apply(context.Background(), c.cfg, c.mac, c.action)
	if err != nil {
		return err
	}
	fmt.Fprint(c.ctx.out(), formatSnapshot(snapshot))
	return nil
}
