package service

import (
	"context"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

// Status is the outcome of a pipeline run.
type Status string

const (
	// StatusNoRoutersConfigured means the router list is empty.
	StatusNoRoutersConfigured Status = "no_routers"
	// StatusNoReachableRouter means no configured router is on the current
	// network with working credentials.
	StatusNoReachableRouter Status = "no_reachable_router"
	// StatusReachable means a router was selected and queried.
	StatusReachable Status = "reachable"
)

// ActiveState is what the presentation layer renders for the active router.
type ActiveState struct {
	Router     config.RouterConfig            `json:"router"`
	Interfaces []networking.InterfaceInfo     `json:"interfaces"`
	Policies   map[string]keenetic.PolicyInfo `json:"policies"`
	// ActiveInterface points into Interfaces, or is nil if there are none.
	ActiveInterface *networking.InterfaceInfo `json:"active_interface,omitempty"`
	// ActiveAddress is the address the router was reached on.
	ActiveAddress string `json:"active_address"`
}

// Target returns the router and address mutations should be sent to.
func (s *ActiveState) Target() RouterTarget {
	return RouterTarget{Router: s.Router, Address: s.ActiveAddress}
}

// Pipeline selects the active router and builds its ActiveState.
//
// Each Run starts from scratch: local networks are re-read, sessions are
// created fresh and nothing is cached between runs.
type Pipeline struct {
	clients     domain.ClientFactory
	credentials credentials.Store
	interfaces  networking.InterfaceSource
	resolver    networking.HostResolver
}

// NewPipeline creates a pipeline from the application dependencies.
func NewPipeline(deps *domain.AppDependencies) *Pipeline {
	return &Pipeline{
		clients:     deps.ClientFactory(),
		credentials: deps.Credentials(),
		interfaces:  deps.Interfaces(),
		resolver:    deps.Resolver(),
	}
}

// Run selects the first candidate router that accepts its stored credentials
// and fetches its policies and client table.
//
// Routers without a stored password or failing to log in are skipped; later
// candidates are not contacted once one succeeds. "No routers" and "no
// reachable router" are reported through the status, not as errors. A router
// that logs in but then fails to return its tables is an error.
func (p *Pipeline) Run(ctx context.Context, routers []config.RouterConfig) (*ActiveState, Status, error) {
	if len(routers) == 0 {
		return nil, StatusNoRoutersConfigured, nil
	}

	ifaces, err := p.interfaces.LocalInterfaces()
	if err != nil {
		return nil, StatusNoReachableRouter, fmt.Errorf("failed to list local interfaces: %w", err)
	}

	networks := networking.LocalNetworks(ifaces)
	candidates := networking.Candidates(ctx, routers, networks, p.resolver)
	log.Debugf("%d of %d router(s) are on a local network", len(candidates), len(routers))

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, StatusNoReachableRouter, err
		}

		client, ok := p.login(ctx, candidate)
		if !ok {
			continue
		}

		state, err := buildState(ctx, client, candidate, ifaces)
		if err != nil {
			return nil, StatusNoReachableRouter, fmt.Errorf("router %q: %w", candidate.Router.Name, err)
		}
		return state, StatusReachable, nil
	}

	return nil, StatusNoReachableRouter, nil
}

func (p *Pipeline) login(ctx context.Context, candidate networking.Candidate) (domain.RouterClient, bool) {
	router := candidate.Router

	password, ok, err := p.credentials.Get(router.Name)
	if err != nil {
		log.Warnf("Skipping router %q: %v", router.Name, err)
		return nil, false
	}
	if !ok {
		log.Debugf("Skipping router %q: no stored password", router.Name)
		return nil, false
	}

	client := p.clients(candidate.Address, router.Login, password)
	log.Debugf("Logging in to %q at %s", router.Name, client.BaseURL())
	if err := client.Login(ctx); err != nil {
		log.Debugf("Login to %q failed: %v", router.Name, err)
		return nil, false
	}
	log.Debugf("Router %q is active", router.Name)
	return client, true
}

func buildState(ctx context.Context, client domain.RouterClient, candidate networking.Candidate, ifaces []networking.LocalInterface) (*ActiveState, error) {
	policies, err := client.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}
	clients, err := client.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	interfaces := networking.CorrelateInterfaces(ifaces, clients)
	return &ActiveState{
		Router:          candidate.Router,
		Interfaces:      interfaces,
		Policies:        policies,
		ActiveInterface: networking.ChooseActiveInterface(interfaces),
		ActiveAddress:   candidate.Address,
	}, nil
}
