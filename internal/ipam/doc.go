// Package ipam assigns IPv4 addresses to cluster VMs.
//
// Addresses are handed out sequentially within the /24 of the first address.
// Host ids reserved for infrastructure (gateway .1, DNS .2, management
// placeholder .5) are skipped; a management cluster may use .5 itself. A
// range that would run past .254 fails with [ErrSubnetBoundary].
//
// When several clusters are compiled together, [Allocator.AllocateMulti]
// requires an explicit first IP from every cluster without explicit VMs, and
// a [Ledger] rejects the first address assigned twice.
package ipam
