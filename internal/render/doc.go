// Package render turns resolved clusters into the files consumed by the
// provisioning scripts: a YAML provisioning descriptor per cluster and
// shell-sourceable environment files.
package render
