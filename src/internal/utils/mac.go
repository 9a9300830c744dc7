package utils

import "strings"

// NormalizeMAC returns the canonical form used as a client key: trimmed and lower-cased.
func NormalizeMAC(mac string) string {
	return strings.ToLower(strings.TrimSpace(mac))
}

// EncodeMAC strips colons so the MAC can be embedded in identifiers and URL paths.
func EncodeMAC(mac string) string {
	return strings.ReplaceAll(mac, ":", "")
}

// DecodeMAC reverses EncodeMAC by inserting a colon every two characters.
// Input that already contains colons is normalized the same way.
func DecodeMAC(value string) string {
	cleaned := strings.ReplaceAll(value, ":", "")
	var sb strings.Builder
	for i, ch := range cleaned {
		if i > 0 && i%2 == 0 {
			sb.WriteByte(':')
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
