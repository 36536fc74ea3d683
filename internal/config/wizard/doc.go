// Package wizard provides the interactive request builder behind
// "kubelab init".
//
// RunWizard asks a short series of questions with charmbracelet/huh and
// returns a WizardResult. BuildRequest converts the answers to a
// config.Request and WriteRequest saves it as YAML with a descriptive header.
package wizard
