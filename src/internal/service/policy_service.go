package service

import (
	"context"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// RouterTarget is a router and the address it was last reached on.
type RouterTarget struct {
	Router  config.RouterConfig
	Address string
}

type actionKind int

const (
	actionDefault actionKind = iota
	actionBlock
	actionSetPolicy
)

// PolicyAction is a change to apply to one client.
type PolicyAction struct {
	kind   actionKind
	policy string
}

// ActionDefault restores the router's default policy.
func ActionDefault() PolicyAction { return PolicyAction{kind: actionDefault} }

// ActionBlock denies the client network access.
func ActionBlock() PolicyAction { return PolicyAction{kind: actionBlock} }

// ActionSetPolicy assigns the named router policy.
func ActionSetPolicy(name string) PolicyAction {
	return PolicyAction{kind: actionSetPolicy, policy: name}
}

// Override returns the client state the router is expected to report once
// the action has been applied.
func (a PolicyAction) Override() PolicyOverride {
	switch a.kind {
	case actionBlock:
		return PolicyOverride{Deny: true}
	case actionSetPolicy:
		name := a.policy
		return PolicyOverride{Policy: &name}
	default:
		return PolicyOverride{}
	}
}

func (a PolicyAction) String() string {
	switch a.kind {
	case actionBlock:
		return "block"
	case actionSetPolicy:
		return "set policy " + a.policy
	default:
		return "default policy"
	}
}

// PolicyService applies client policy changes to a router selected by a
// previous pipeline run. It never re-runs router selection.
type PolicyService struct {
	clients     domain.ClientFactory
	credentials credentials.Store
}

// NewPolicyService creates a policy service from the application dependencies.
func NewPolicyService(deps *domain.AppDependencies) *PolicyService {
	return &PolicyService{
		clients:     deps.ClientFactory(),
		credentials: deps.Credentials(),
	}
}

// Apply performs action for the client with the given MAC. Failures are
// returned as is; nothing is rolled back.
func (s *PolicyService) Apply(ctx context.Context, target RouterTarget, mac string, action PolicyAction) error {
	mac = utils.NormalizeMAC(mac)
	if mac == "" {
		return kerrors.NewValidationError("client MAC is required", nil)
	}
	if action.kind == actionSetPolicy && action.policy == "" {
		return kerrors.NewValidationError("policy name is required", nil)
	}

	client, err := connect(s.clients, s.credentials, target)
	if err != nil {
		return err
	}

	log.Infof("Applying %s to %s on router %q", action, mac, target.Router.Name)
	switch action.kind {
	case actionBlock:
		err = client.BlockClient(ctx, mac)
	case actionSetPolicy:
		err = client.SetClientPolicy(ctx, mac, keenetic.NamedPolicy(action.policy))
	default:
		err = client.ApplyDefaultPolicy(ctx, mac)
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s to %s: %w", action, mac, err)
	}
	return nil
}

// ApplyPolicy assigns the named policy to a client.
func (s *PolicyService) ApplyPolicy(ctx context.Context, target RouterTarget, mac, policy string) error {
	return s.Apply(ctx, target, mac, ActionSetPolicy(policy))
}

// ApplyDefault restores the default policy of a client.
func (s *PolicyService) ApplyDefault(ctx context.Context, target RouterTarget, mac string) error {
	return s.Apply(ctx, target, mac, ActionDefault())
}

// Block denies a client network access.
func (s *PolicyService) Block(ctx context.Context, target RouterTarget, mac string) error {
	return s.Apply(ctx, target, mac, ActionBlock())
}

// connect creates a client for target using the stored password.
func connect(clients domain.ClientFactory, store credentials.Store, target RouterTarget) (domain.RouterClient, error) {
	if target.Router.Name == "" || target.Address == "" {
		return nil, kerrors.NewNoActiveRouterError("no active router")
	}

	password, ok, err := store.Get(target.Router.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, kerrors.NewCredentialsError(fmt.Sprintf("no password stored for router %q", target.Router.Name), nil)
	}
	return clients(target.Address, target.Router.Login, password), nil
}
