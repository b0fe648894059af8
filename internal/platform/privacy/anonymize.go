// Package privacy truncates personal data before it reaches logs.
package privacy

import (
	"fmt"
	"net"
)

// AnonymizeIP masks the host-identifying part of an address so denial logs
// never store a full client IP. IPv4 is truncated to the /24 network (last
// octet zeroed); IPv6 keeps only the /48 prefix.
//
// Returns "invalid" for unparseable input and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	// To4 also catches IPv4-mapped IPv6 addresses.
	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	// /48 prefix = first 6 of 16 bytes.
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}
