package service

import (
	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

const (
	LabelBlocked = "Blocked"
	LabelDefault = "Default"
	TrayTitle    = "Keenetic Tray"

	shortLabelLength = 3
)

// PolicyLabel returns the display label of the interface's policy: the
// policy description if the router has one, else the policy name.
func PolicyLabel(info networking.InterfaceInfo, policies map[string]keenetic.PolicyInfo) string {
	if info.Deny {
		return LabelBlocked
	}
	if info.Policy == nil || *info.Policy == "" {
		return LabelDefault
	}
	name := *info.Policy
	if policy, ok := policies[name]; ok && policy.Description != nil && *policy.Description != "" {
		return *policy.Description
	}
	return name
}

// PolicyShort returns the first characters of the label for compact display.
func PolicyShort(label string) string {
	runes := []rune(label)
	if len(runes) > shortLabelLength {
		runes = runes[:shortLabelLength]
	}
	return string(runes)
}

// FormatTooltip renders the tray tooltip for state.
//
// The format may reference {router}, {interface}, {label} and {short}. With
// no active interface the plain title is returned.
func FormatTooltip(format string, state *ActiveState) string {
	if state == nil || state.ActiveInterface == nil {
		return TrayTitle
	}
	if format == "" {
		format = config.DefaultTooltipFormat
	}

	template, err := fasttemplate.NewTemplate(format, "{", "}")
	if err != nil {
		log.Warnf("Invalid tooltip format %q: %v", format, err)
		template = fasttemplate.New(config.DefaultTooltipFormat, "{", "}")
	}

	label := PolicyLabel(*state.ActiveInterface, state.Policies)
	return template.ExecuteString(map[string]interface{}{
		"router":    state.Router.Name,
		"interface": state.ActiveInterface.DisplayName,
		"label":     label,
		"short":     PolicyShort(label),
	})
}
