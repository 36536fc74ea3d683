// Package orchestration resolves sparse cluster specs into specs with
// explicit VMs.
//
// # Workflow
//
// For each cluster the Orchestrator runs two steps in order:
//  1. Allocation - addresses from the ipam allocator
//  2. Generation - named VM records from vmgen
//
// A cluster that already lists its VMs is passed through untouched. The
// input spec is never modified; an enriched copy is returned.
//
// # Usage
//
//	o := orchestration.New(ipam.New(ipam.DefaultOptions()))
//	resolved, err := o.ResolveAll(specs)
//
// ResolveAll works in input order and fails on the first error, discarding
// everything resolved so far.
package orchestration
