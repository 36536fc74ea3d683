// Package labels builds the label sets attached to VMs in the provisioning
// descriptor.
//
// All keys use the kubelab.io domain prefix.
package labels
