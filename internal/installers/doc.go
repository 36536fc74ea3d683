// Package installers maps a cluster to the ordered list of installer
// scripts its provisioning needs.
//
// Each engine has a fixed base tool list; kubeadm adds the script of its CNI
// plugin and management clusters install the tools they list. Script names
// are "install-<tool>.sh", kept in first-seen order without duplicates.
package installers
