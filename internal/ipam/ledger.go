package ipam

import (
	"fmt"
	"net/netip"
)

// Ledger records which cluster owns which address across a batch.
type Ledger struct {
	owners map[netip.Addr]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{owners: make(map[netip.Addr]string)}
}

// Claim records addrs for cluster. The first address already owned by a
// previous claim is reported as an overlap and nothing of this claim is kept.
func (l *Ledger) Claim(cluster string, addrs []netip.Addr) error {
	for _, addr := range addrs {
		if owner, taken := l.owners[addr]; taken {
			return fmt.Errorf("%w: %s of cluster %q is already assigned to cluster %q",
				ErrOverlap, addr, cluster, owner)
		}
	}
	for _, addr := range addrs {
		l.owners[addr] = cluster
	}
	return nil
}
