package cidr

import (
	"fmt"
	"net"
	"strings"

	"github.com/khalid-nowaf/prefixtrie/pkg/trie"
)

// version tokens keep IPv4 and IPv6 networks on separate branches of one trie.
const (
	V4 = 4
	V6 = 6
)

// Tokenizer turns CIDR text ("10.0.0.0/8", "2001:db8::/32") or a bare IP into
// its version token followed by the network bits, one token per bit.
//
// In a trie built with it Lookup answers "is this exact network stored" and
// IsPrefix answers "are there more specific networks inside it".
type Tokenizer struct{}

func (Tokenizer) Tokenize(value string) ([]int, error) {
	ipnet, err := Parse(value)
	if err != nil {
		return nil, err
	}
	return CidrToBits(ipnet), nil
}

// NewTrie creates a trie of networks seeded with cidrs.
func NewTrie(cidrs []string, opts ...trie.Option) *trie.Trie[string, int] {
	return trie.New[string, int](Tokenizer{}, cidrs, opts...)
}

// Parse accepts CIDR notation or a bare IP, which is read as a host network (/32 or /128).
func Parse(value string) (*net.IPNet, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		_, ipnet, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", trie.ErrInvalidValue, err)
		}
		return ipnet, nil
	}

	ip := net.ParseIP(value)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q is not an IP or CIDR", trie.ErrInvalidValue, value)
	}
	if v4 := ip.To4(); v4 != nil {
		return &net.IPNet{IP: v4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(128, 128)}, nil
}

// CidrToBits converts a network into its version token followed by the first
// mask-size bits of the network address.
//
// Example:
//
//	For "192.168.1.0/24" it returns [4, 1,1,0,0,0,0,0,0, 1,0,1,0,1,0,0,0, 0,0,0,0,0,0,0,1].
//	For "0.0.0.0/0" it returns [4].
func CidrToBits(ipnet *net.IPNet) []int {
	if ipnet == nil {
		panic("[BUG] CidrToBits: IPNet is nil: validate the input before calling CidrToBits")
	}

	// the mask length decides the family, an IPv4-mapped IPv6 network stays IPv6
	version, ip := V6, ipnet.IP.To16()
	if len(ipnet.Mask) == net.IPv4len {
		version, ip = V4, ipnet.IP.To4()
	}

	maskSize, _ := ipnet.Mask.Size()
	path := make([]int, 0, maskSize+1)
	path = append(path, version)

	for _, byteVal := range ip {
		for bitPosition := 0; bitPosition < 8; bitPosition++ {
			if len(path) == maskSize+1 {
				return path
			}
			// most significant bit first
			path = append(path, int((byteVal>>(7-bitPosition))&1))
		}
	}

	if len(path) != maskSize+1 {
		panic("[BUG] CidrToBits: bit calculation error - did not process enough bits for the mask size")
	}
	return path
}
