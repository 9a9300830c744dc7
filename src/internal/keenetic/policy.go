package keenetic

import (
	"encoding/json"
	"fmt"
)

// PolicyAssignment is the policy a client should get: either a named router
// policy or the router's default.
//
// The hotspot API encodes the two cases with different JSON types (a string
// name versus the boolean false); MarshalJSON and UnmarshalJSON are the only
// places that know this.
type PolicyAssignment struct {
	name  string
	named bool
}

// NamedPolicy assigns the router policy called name.
func NamedPolicy(name string) PolicyAssignment {
	return PolicyAssignment{name: name, named: true}
}

// ClearPolicy restores the default policy.
func ClearPolicy() PolicyAssignment {
	return PolicyAssignment{}
}

// Name returns the policy name and true for a named assignment.
func (p PolicyAssignment) Name() (string, bool) {
	return p.name, p.named
}

// IsClear reports whether p restores the default policy.
func (p PolicyAssignment) IsClear() bool {
	return !p.named
}

func (p PolicyAssignment) String() string {
	if p.named {
		return p.name
	}
	return "<default>"
}

// MarshalJSON encodes a named policy as its name and a cleared one as false.
func (p PolicyAssignment) MarshalJSON() ([]byte, error) {
	if p.named {
		return json.Marshal(p.name)
	}
	return []byte("false"), nil
}

// UnmarshalJSON accepts a policy name, false or null.
func (p *PolicyAssignment) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	assignment, ok := policyFromValue(value)
	if !ok {
		return fmt.Errorf("invalid policy value: %s", string(data))
	}
	*p = assignment
	return nil
}

// policyFromValue decodes the "policy" field of a hotspot row.
func policyFromValue(value any) (PolicyAssignment, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return ClearPolicy(), true
		}
		return NamedPolicy(v), true
	case bool:
		if v {
			return PolicyAssignment{}, false
		}
		return ClearPolicy(), true
	case nil:
		return ClearPolicy(), true
	default:
		return PolicyAssignment{}, false
	}
}
