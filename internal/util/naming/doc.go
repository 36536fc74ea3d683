// Package naming provides consistent naming functions for cluster VMs.
//
// Single-node and management clusters name their only VM after the cluster.
// Multi-node clusters follow {cluster}-master-{n} and {cluster}-worker-{n},
// 1-indexed, so names stay stable across recompilations of the same request.
package naming
