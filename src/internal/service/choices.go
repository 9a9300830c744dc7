package service

import (
	"sort"
	"strings"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

const (
	choicePrefix    = "policy"
	choiceSeparator = "|"
	choiceDefault   = "default"
	choiceBlocked   = "blocked"
	choiceSet       = "set"

	currentMarker = "• "
)

// PolicyChoice is one selectable entry of an interface's policy menu.
type PolicyChoice struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// PolicyChoices lists the policy menu of an interface: the default policy,
// blocking and then every router policy sorted by name. The entry matching
// the interface's current state is marked.
func PolicyChoices(info networking.InterfaceInfo, policies map[string]keenetic.PolicyInfo) []PolicyChoice {
	mac := utils.EncodeMAC(info.MAC)
	current := ""
	if info.Policy != nil {
		current = *info.Policy
	}

	choices := []PolicyChoice{
		newChoice(choiceID(mac, choiceDefault), LabelDefault, !info.Deny && current == ""),
		newChoice(choiceID(mac, choiceBlocked), LabelBlocked, info.Deny),
	}

	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		label := name
		if desc := policies[name].Description; desc != nil && *desc != "" {
			label = *desc
		}
		choices = append(choices, newChoice(choiceID(mac, choiceSet, name), label, !info.Deny && current == name))
	}
	return choices
}

func newChoice(id, label string, current bool) PolicyChoice {
	if current {
		label = currentMarker + label
	}
	return PolicyChoice{ID: id, Label: label, Current: current}
}

func choiceID(parts ...string) string {
	return choicePrefix + choiceSeparator + strings.Join(parts, choiceSeparator)
}

// ParseChoiceID decodes a menu identifier produced by PolicyChoices into the
// client MAC and the action to apply.
func ParseChoiceID(id string) (string, PolicyAction, error) {
	parts := strings.SplitN(id, choiceSeparator, 4)
	if len(parts) < 3 || parts[0] != choicePrefix || parts[1] == "" {
		return "", PolicyAction{}, kerrors.NewValidationError("malformed choice id: "+id, nil)
	}
	mac := utils.NormalizeMAC(utils.DecodeMAC(parts[1]))

	switch {
	case parts[2] == choiceDefault && len(parts) == 3:
		return mac, ActionDefault(), nil
	case parts[2] == choiceBlocked && len(parts) == 3:
		return mac, ActionBlock(), nil
	case parts[2] == choiceSet && len(parts) == 4 && parts[3] != "":
		return mac, ActionSetPolicy(parts[3]), nil
	}
	return "", PolicyAction{}, kerrors.NewValidationError("malformed choice id: "+id, nil)
}
