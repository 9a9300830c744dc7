package networking

import (
	"strings"

	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

const (
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

// NotApplicable is the IP of an interface without an IPv4 address.
const NotApplicable = "N/A"

// Interface types.
const (
	TypeWiFi     = "Wi-Fi"
	TypeEthernet = "Ethernet"
	TypeUnknown  = "Unknown"
)

// InterfaceInfo is a local interface joined with the router's view of it.
type InterfaceInfo struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	MAC         string  `json:"mac"`
	IP          string  `json:"ip"`
	Type        string  `json:"type"`
	Online      bool    `json:"online"`
	Policy      *string `json:"policy,omitempty"`
	Deny        bool    `json:"deny"`
}

// InterfaceType classifies an interface by its name prefix.
func InterfaceType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "wl"), strings.HasPrefix(lower, "wifi"):
		return TypeWiFi
	case strings.HasPrefix(lower, "en"), strings.HasPrefix(lower, "eth"):
		return TypeEthernet
	default:
		return TypeUnknown
	}
}

// CorrelateInterfaces matches local interfaces against the router's client
// table by MAC.
//
// Loopback interfaces and interfaces without a MAC are never included. When
// clients is non-empty only interfaces the router knows about are kept;
// otherwise every remaining interface is returned without router data.
func CorrelateInterfaces(ifaces []LocalInterface, clients map[string]*keenetic.ClientRecord) []InterfaceInfo {
	var infos []InterfaceInfo

	for _, iface := range ifaces {
		if iface.Loopback || iface.MAC == "" {
			log.Debugf("Skipping interface %s (loopback=%v, mac=%q)", iface.Name, iface.Loopback, iface.MAC)
			continue
		}

		record, known := clients[iface.MAC]
		if len(clients) > 0 && !known {
			log.Debugf("Skipping interface %s: %s is not a client of the router", iface.Name, iface.MAC)
			continue
		}

		info := InterfaceInfo{
			Name:        iface.Name,
			DisplayName: iface.Name,
			MAC:         iface.MAC,
			IP:          NotApplicable,
			Type:        InterfaceType(iface.Name),
		}
		if len(iface.IPv4) > 0 {
			info.IP = iface.IPv4[0].Addr().String()
		}
		if known {
			if record.Name != nil {
				info.DisplayName = *record.Name
			}
			info.Policy = record.Policy
			info.Deny = record.Deny
			info.Online = record.Online()
		}

		infos = append(infos, info)
	}

	return infos
}

// ChooseActiveInterface returns the first online interface, or the first
// interface if none is online. It returns nil for an empty list.
func ChooseActiveInterface(infos []InterfaceInfo) *InterfaceInfo {
	if len(infos) == 0 {
		return nil
	}

	chosen := 0
	for i := range infos {
		if infos[i].Online {
			chosen = i
			break
		}
	}

	for i := range infos {
		logInterfaceStatus(&infos[i], i == chosen)
	}
	return &infos[chosen]
}

func logInterfaceStatus(info *InterfaceInfo, isChosen bool) {
	marker := "  "
	if isChosen {
		marker = colorGreen + "->" + colorReset
	}
	policy := "<default>"
	if info.Policy != nil {
		policy = *info.Policy
	}
	log.Debugf(" %s %s (%s, %s) ip=%s online=%v policy=%s deny=%v",
		marker, info.Name, info.DisplayName, info.Type, info.IP, info.Online, policy, info.Deny)
}
