package service

import (
	"context"
	"sync"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

// Snapshot is the rendered result of one refresh, as shown in the tray menu.
type Snapshot struct {
	Status  Status         `json:"status"`
	State   *ActiveState   `json:"state,omitempty"`
	Label   string         `json:"label,omitempty"`
	Short   string         `json:"short,omitempty"`
	Tooltip string         `json:"tooltip"`
	Choices []PolicyChoice `json:"choices,omitempty"`
}

// StateService keeps the latest snapshot and the pending overrides for a
// long-running front-end (the API server or the watch loop).
type StateService struct {
	pipeline  *Pipeline
	policies  *PolicyService
	overrides *OverrideStore

	mu   sync.Mutex // guards pipeline, policies and last
	last *Snapshot
}

// NewStateService creates a state service from the application dependencies.
func NewStateService(deps *domain.AppDependencies) *StateService {
	return &StateService{
		pipeline:  NewPipeline(deps),
		policies:  NewPolicyService(deps),
		overrides: NewOverrideStore(),
	}
}

// SetDependencies switches later refreshes and mutations to deps, e.g. after
// the request timeout or resolver settings changed. Pending overrides and the
// last snapshot are kept.
func (s *StateService) SetDependencies(deps *domain.AppDependencies) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline = NewPipeline(deps)
	s.policies = NewPolicyService(deps)
}

func (s *StateService) services() (*Pipeline, *PolicyService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline, s.policies
}

// Refresh re-runs router selection for cfg and returns the new snapshot.
func (s *StateService) Refresh(ctx context.Context, cfg *config.Config) (*Snapshot, error) {
	pipeline, _ := s.services()
	state, status, err := pipeline.Run(ctx, cfg.Routers)
	if err != nil {
		return nil, err
	}
	return s.store(cfg, state, status), nil
}

// Apply re-runs router selection, applies action to the client with the
// given MAC on the selected router and records the expected state so the
// next refreshes show it even if the router is slow to report it.
func (s *StateService) Apply(ctx context.Context, cfg *config.Config, mac string, action PolicyAction) (*Snapshot, error) {
	pipeline, policies := s.services()
	state, status, err := pipeline.Run(ctx, cfg.Routers)
	if err != nil {
		return nil, err
	}
	if status != StatusReachable {
		s.store(cfg, state, status)
		return nil, kerrors.NewNoActiveRouterError("no reachable router to apply the policy on")
	}

	if err := policies.Apply(ctx, state.Target(), mac, action); err != nil {
		return nil, err
	}
	s.overrides.Record(mac, action.Override())
	return s.store(cfg, state, status), nil
}

// Last returns the latest snapshot, or nil before the first refresh.
func (s *StateService) Last() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *StateService) store(cfg *config.Config, state *ActiveState, status Status) *Snapshot {
	s.overrides.Apply(state)

	snapshot := &Snapshot{
		Status:  status,
		State:   state,
		Tooltip: FormatTooltip(cfg.General.TooltipFormat, state),
	}
	if state != nil && state.ActiveInterface != nil {
		snapshot.Label = PolicyLabel(*state.ActiveInterface, state.Policies)
		snapshot.Short = PolicyShort(snapshot.Label)
		snapshot.Choices = PolicyChoices(*state.ActiveInterface, state.Policies)
	}

	s.mu.Lock()
	s.last = snapshot
	s.mu.Unlock()

	log.Debugf("State: %s, tooltip %q", status, snapshot.Tooltip)
	return snapshot
}
