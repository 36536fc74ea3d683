package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	k8svalidation "k8s.io/apimachinery/pkg/util/validation"
)

// MaxNameLength is the longest cluster or VM name accepted (one DNS label).
const MaxNameLength = 63

// Address parsing errors.
var (
	ErrInvalidIP  = errors.New("invalid IP address")
	ErrNotIPv4    = errors.New("only IPv4 addresses are supported")
	ErrReservedIP = errors.New("address is in a reserved range")
)

// ClusterName is a validated DNS-label-safe cluster name.
// The zero value is not a valid name; obtain one through ParseClusterName.
type ClusterName struct {
	name string
}

// ParseClusterName validates s and returns it as a ClusterName.
func ParseClusterName(s string) (ClusterName, error) {
	if err := checkDNSLabel(s); err != nil {
		return ClusterName{}, fmt.Errorf("cluster name %q: %w", s, err)
	}
	return ClusterName{name: s}, nil
}

// String returns the name.
func (n ClusterName) String() string { return n.name }

// VMName is a validated DNS-label-safe VM name.
type VMName struct {
	name string
}

// ParseVMName validates s and returns it as a VMName.
func ParseVMName(s string) (VMName, error) {
	if err := checkDNSLabel(s); err != nil {
		return VMName{}, fmt.Errorf("vm name %q: %w", s, err)
	}
	return VMName{name: s}, nil
}

// MustVMName is like ParseVMName but panics on invalid input.
// It is intended for literals in tests and tables.
func MustVMName(s string) VMName {
	n, err := ParseVMName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name.
func (n VMName) String() string { return n.name }

// IsZero reports whether n was never initialised.
func (n VMName) IsZero() bool { return n.name == "" }

// MarshalText implements encoding.TextMarshaler.
func (n VMName) MarshalText() ([]byte, error) {
	return []byte(n.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the name.
func (n *VMName) UnmarshalText(b []byte) error {
	parsed, err := ParseVMName(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// CheckName returns the DNS label violations of s joined into one message,
// or an empty string when s is a valid name.
func CheckName(s string) string {
	if s == "" {
		return "name is required"
	}
	msgs := k8svalidation.IsDNS1035Label(s)
	if len(msgs) == 0 {
		return ""
	}
	return strings.Join(msgs, "; ")
}

func checkDNSLabel(s string) error {
	if msg := CheckName(s); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// ParseIPv4 parses s as a host IPv4 address.
// IPv6 input is rejected with ErrNotIPv4.
func ParseIPv4(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w %q", ErrInvalidIP, s)
	}
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w, got %s", ErrNotIPv4, s)
	}
	return addr, nil
}

// ParseFirstIP parses an explicit first address and rejects reserved ranges:
// unspecified, loopback, link-local, multicast and broadcast.
func ParseFirstIP(s string) (netip.Addr, error) {
	addr, err := ParseIPv4(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if err := CheckHostAddr(addr); err != nil {
		return netip.Addr{}, err
	}
	return addr, nil
}

// CheckHostAddr reports whether addr can be assigned to a VM. It applies
// the same reserved ranges as ParseFirstIP.
func CheckHostAddr(addr netip.Addr) error {
	if !addr.Is4() {
		return fmt.Errorf("%w, got %s", ErrNotIPv4, addr)
	}
	if reason := reservedReason(addr); reason != "" {
		return fmt.Errorf("%w: %s is %s", ErrReservedIP, addr, reason)
	}
	return nil
}

func reservedReason(addr netip.Addr) string {
	b := addr.As4()
	switch {
	case addr.IsUnspecified():
		return "unspecified"
	case addr.IsLoopback():
		return "loopback"
	case addr.IsLinkLocalUnicast():
		return "link-local"
	case addr.IsMulticast():
		return "multicast"
	case b[3] == 255:
		return "a broadcast address"
	default:
		return ""
	}
}
