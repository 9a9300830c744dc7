package keenetic

import (
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// RawClient is one vendor row of the hotspot host table, kept as decoded JSON
// so fields that are not modeled stay available.
type RawClient map[string]any

// MAC returns the normalized MAC of the row, or "" if it has none.
func (r RawClient) MAC() string {
	mac, _ := stringField(r, "mac")
	return utils.NormalizeMAC(mac)
}

// ClientRecord is the canonical view of one physical device.
type ClientRecord struct {
	MAC    string
	Name   *string
	IP     *string
	Policy *string
	Deny   bool
	// Raw is the latest vendor row seen for this MAC.
	Raw RawClient
}

// Online reports whether the latest vendor row says the device is connected.
func (c *ClientRecord) Online() bool {
	return IsOnline(c.Raw)
}

// IsOnline reports whether a hotspot row is online: its top-level "link" is
// "up", or the mesh hop's "mws.link" is "up".
func IsOnline(raw RawClient) bool {
	if link, ok := stringField(raw, "link"); ok && link == KeeneticLinkUp {
		return true
	}
	mws, ok := raw["mws"].(map[string]any)
	if !ok {
		return false
	}
	link, ok := stringField(mws, "link")
	return ok && link == KeeneticLinkUp
}

// Reconcile merges hotspot rows into one record per MAC.
func Reconcile(rows []RawClient) map[string]*ClientRecord {
	ordered := ReconcileOrdered(rows)
	result := make(map[string]*ClientRecord, len(ordered))
	for _, record := range ordered {
		result[record.MAC] = record
	}
	return result
}

// ReconcileOrdered merges hotspot rows into one record per MAC and returns the
// records in order of first sighting.
//
// Rows without a MAC are dropped. Name, IP and policy keep the first non-null
// value; deny is overwritten by every row that carries it; Raw is always the
// latest row.
func ReconcileOrdered(rows []RawClient) []*ClientRecord {
	var ordered []*ClientRecord
	byMAC := make(map[string]*ClientRecord)

	for _, row := range rows {
		if row == nil {
			continue
		}
		mac := row.MAC()
		if mac == "" {
			continue
		}

		record, seen := byMAC[mac]
		if !seen {
			record = &ClientRecord{MAC: mac}
			byMAC[mac] = record
			ordered = append(ordered, record)
		} else {
			log.Debugf("Merging duplicate hotspot row for %s", mac)
		}

		if record.Name == nil {
			record.Name = optionalString(row, "name")
		}
		if record.IP == nil {
			record.IP = optionalString(row, "ip")
		}
		if record.Policy == nil {
			if policy, ok := policyFromValue(row["policy"]); ok {
				if name, named := policy.Name(); named {
					record.Policy = &name
				}
			}
		}
		if deny, ok := row["deny"].(bool); ok {
			record.Deny = deny
		}
		record.Raw = row
	}

	return ordered
}

func stringField(obj map[string]any, key string) (string, bool) {
	value, ok := obj[key].(string)
	return value, ok
}

func optionalString(obj map[string]any, key string) *string {
	if value, ok := stringField(obj, key); ok {
		return &value
	}
	return nil
}
