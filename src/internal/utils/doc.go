// Package utils provides small helpers shared across keen-tray.
//
//   - Address helpers: normalize router addresses, extract their host part, check ports
//   - MAC helpers: canonical lower-case form and colon-free encoding for identifiers
//   - IP helpers: IPv4 mask conversion into netip prefixes
//   - File helpers: closing with a logged warning
//
// Example:
//
//	utils.NormalizeAddress("192.168.1.1/") // "http://192.168.1.1"
//	utils.ExtractHost("https://my.keenetic.net:8443/a") // "my.keenetic.net"
//	utils.EncodeMAC("aa:bb:cc:dd:ee:ff") // "aabbccddeeff"
package utils
