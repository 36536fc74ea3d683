// Package plan assembles a render-ready plan from cluster specs.
//
// # Workflow
//
// Build runs the following steps and stops at the first failure:
//  1. Validation - the full structural, semantic and policy pipeline
//  2. Resolution - IP allocation and VM generation for every cluster
//  3. Planning   - environment and installer scripts, per cluster in parallel
//
// Validation findings are returned even when Build fails, so callers can
// report every problem at once.
package plan
