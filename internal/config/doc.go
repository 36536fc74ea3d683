// Package config defines the data model shared by every compiler stage.
//
// A [ClusterSpec] is the sparse description of one cluster as the user asked
// for it: an engine, node counts, a size profile, an optional CNI and an
// optional first IP. The orchestrator turns it into an enriched copy that
// carries explicit [VMConfig] records.
//
// The package also owns the two inputs that surround a compilation: the
// request file listing clusters ([LoadRequest]) and the tool [Settings]
// holding policy ceilings and network defaults ([LoadSettings]).
package config
