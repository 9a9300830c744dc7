package service

import (
	"sync"

	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// PolicyOverride is the client state a recent mutation is expected to produce.
type PolicyOverride struct {
	Policy *string `json:"policy,omitempty"`
	Deny   bool    `json:"deny"`
}

func (o PolicyOverride) matches(policy *string, deny bool) bool {
	if o.Deny != deny {
		return false
	}
	if o.Policy == nil || policy == nil {
		return o.Policy == nil && policy == nil
	}
	return *o.Policy == *policy
}

// OverrideStore remembers applied mutations until the router reports them.
//
// The router's client table can lag behind a mutation by several seconds, so
// a refresh right after a change would otherwise show the old policy.
type OverrideStore struct {
	mu        sync.Mutex
	overrides map[string]PolicyOverride
}

// NewOverrideStore creates an empty store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{overrides: map[string]PolicyOverride{}}
}

// Record remembers the expected state for mac.
func (s *OverrideStore) Record(mac string, override PolicyOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[utils.NormalizeMAC(mac)] = override
}

// Get returns the pending override for mac.
func (s *OverrideStore) Get(mac string) (PolicyOverride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	override, ok := s.overrides[utils.NormalizeMAC(mac)]
	return override, ok
}

// Len returns the number of pending overrides.
func (s *OverrideStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.overrides)
}

// Apply reconciles state with the pending overrides. An override the router
// already reflects is dropped; any other replaces the policy and deny flag of
// the matching interface.
func (s *OverrideStore) Apply(state *ActiveState) {
	if state == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range state.Interfaces {
		info := &state.Interfaces[i]
		override, ok := s.overrides[info.MAC]
		if !ok {
			continue
		}
		if override.matches(info.Policy, info.Deny) {
			log.Debugf("Router reports the expected policy for %s", info.MAC)
			delete(s.overrides, info.MAC)
			continue
		}
		info.Policy = override.Policy
		info.Deny = override.Deny
	}
}
