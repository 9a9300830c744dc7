package commands

import (
	"fmt"
	"strings"

	"github.com/maksimkurb/keen-tray/src/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// formatSnapshot renders a snapshot for the terminal.
func formatSnapshot(snapshot *service.Snapshot) string {
	var sb strings.Builder

	switch snapshot.Status {
	case service.StatusNoRoutersConfigured:
		sb.WriteString("No routers configured. Add one with the add-router command.\n")
		return sb.String()
	case service.StatusNoReachableRouter:
		sb.WriteString(colorRed + "No configured router is reachable from this network." + colorReset + "\n")
		return sb.String()
	}

	state := snapshot.State
	fmt.Fprintf(&sb, "Router:  %s (%s)\n", state.Router.Name, state.ActiveAddress)
	fmt.Fprintf(&sb, "Tooltip: %s\n", snapshot.Tooltip)

	if len(state.Interfaces) == 0 {
		sb.WriteString("\nNo local interface is known to the router.\n")
		return sb.String()
	}

	sb.WriteString("\nInterfaces:\n")
	for i := range state.Interfaces {
		info := &state.Interfaces[i]
		marker := "  "
		if info == state.ActiveInterface {
			marker = colorGreen + "->" + colorReset
		}
		online := "offline"
		if info.Online {
			online = "online"
		}
		fmt.Fprintf(&sb, "  %s %-10s %-20s [%s] %s %-15s %-7s policy: %s\n",
			marker, info.Name, info.DisplayName, info.Type, info.MAC, info.IP, online,
			service.PolicyLabel(*info, state.Policies))
	}

	if len(snapshot.Choices) > 0 {
		sb.WriteString("\nPolicies:\n")
		for _, choice := range snapshot.Choices {
			fmt.Fprintf(&sb, "  %-25s %s\n", choice.Label, choice.ID)
		}
	}
	return sb.String()
}
