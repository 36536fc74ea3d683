// Package envplan derives the environment variables consumed by the
// bootstrap scripts of a resolved cluster.
//
// A plan has one global environment for the cluster and one environment per
// VM. Keys keep their insertion order so rendered files are byte-identical
// across runs.
package envplan
