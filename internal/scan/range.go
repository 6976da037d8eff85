package scan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/projectdiscovery/mapcidr"

	"github.com/dmaloney/lanprobe/internal/logger"
)

var cidrSuffix = regexp.MustCompile(`/\d{1,2}$`)

// AddressValue converts a dotted-quad address to its 32 bit numeric value.
// Returns false for anything that is not four in-range octets.
func AddressValue(text string) (uint32, bool) {
	parts := strings.Split(text, ".")

	if len(parts) != 4 {
		return 0, false
	}

	var value uint32

	for _, part := range parts {
		octet, err := strconv.ParseUint(part, 10, 8)

		if err != nil {
			return 0, false
		}

		value = value<<8 | uint32(octet)
	}

	return value, true
}

// ValueToAddress converts a 32 bit numeric value back to dotted-quad form
func ValueToAddress(value uint32) string {
	return fmt.Sprintf(
		"%d.%d.%d.%d",
		value>>24&0xFF,
		value>>16&0xFF,
		value>>8&0xFF,
		value&0xFF,
	)
}

// IsValidAddress returns true if text is a valid dotted-quad address
func IsValidAddress(text string) bool {
	_, ok := AddressValue(text)
	return ok
}

// ParseCIDR validates a base-address/prefix-length block and computes its
// numeric start and end addresses. Malformed input yields ok=false, never
// an error: an invalid block simply produces no hosts.
func ParseCIDR(text string) (start, end uint32, ok bool) {
	base, prefixText, found := strings.Cut(text, "/")

	if !found {
		return 0, 0, false
	}

	baseValue, valid := AddressValue(base)

	if !valid {
		return 0, 0, false
	}

	prefix, err := strconv.Atoi(prefixText)

	if err != nil || prefix < 0 || prefix > 32 {
		return 0, 0, false
	}

	var mask uint32

	if prefix > 0 {
		mask = ^uint32(0) << (32 - prefix)
	}

	start = baseValue & mask
	end = start | ^mask

	return start, end, true
}

// Enumerate produces every address from start to end inclusive in ascending
// order. A start greater than end yields an empty sequence.
func Enumerate(start, end uint32) []string {
	if start > end {
		return []string{}
	}

	addresses := make([]string, 0, end-start+1)

	for value := start; ; value++ {
		addresses = append(addresses, ValueToAddress(value))

		if value == end {
			break
		}
	}

	return addresses
}

// EnumerateRange enumerates an explicit start/end address pair. Invalid
// endpoints or an inverted range yield an empty sequence.
func EnumerateRange(startText, endText string) []string {
	start, ok := AddressValue(startText)

	if !ok {
		return []string{}
	}

	end, ok := AddressValue(endText)

	if !ok {
		return []string{}
	}

	return Enumerate(start, end)
}

// ExpandTargets flattens a mixed list of CIDR blocks and bare addresses
// into the full ordered address list. Entries that fail validation
// contribute nothing.
func ExpandTargets(targets []string) []string {
	log := logger.New()

	addresses := []string{}

	for _, target := range targets {
		if cidrSuffix.MatchString(target) {
			if _, _, ok := ParseCIDR(target); !ok {
				log.Warn().Str("target", target).Msg("skipping invalid cidr target")
				continue
			}

			ips, err := mapcidr.IPAddresses(target)

			if err != nil {
				log.Warn().Err(err).Str("target", target).Msg("skipping invalid cidr target")
				continue
			}

			addresses = append(addresses, ips...)

			continue
		}

		if !IsValidAddress(target) {
			log.Warn().Str("target", target).Msg("skipping invalid address target")
			continue
		}

		addresses = append(addresses, target)
	}

	return addresses
}
