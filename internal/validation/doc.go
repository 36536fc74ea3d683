// Package validation decides whether cluster specs are fit to compile.
//
// Validation runs as an ordered pipeline of three independent layers, each
// a pure function from a batch of specs to a list of findings:
//
//   - [Structural] checks internal list consistency of explicit VMs.
//   - [Semantic] enforces per-field rules: names, node counts, addresses.
//   - [Policy] enforces batch-wide rules: CNI, ceilings, name collisions.
//
// The semantic layer only runs when the structural layer found no errors;
// the policy layer always runs. No layer stops at its first finding, so a
// [Result] always carries every problem of the input.
package validation
