package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	netutils "k8s.io/utils/net"
)

// DefaultSettingsFilename is the settings file looked up in the working
// directory and in $HOME/.config/kubelab.
const DefaultSettingsFilename = "kubelab"

// EnvPrefix prefixes environment variables overriding settings,
// e.g. KUBELAB_POLICY_MAX_TOTAL_VMS.
const EnvPrefix = "KUBELAB"

// Settings are tool-wide knobs that are not part of a request.
type Settings struct {
	Policy        PolicySettings  `mapstructure:"policy" yaml:"policy"`
	Network       NetworkSettings `mapstructure:"network" yaml:"network"`
	CloudProvider string          `mapstructure:"cloud_provider" yaml:"cloud_provider,omitempty"`
}

// PolicySettings are the topology-wide ceilings enforced by validation.
type PolicySettings struct {
	MaxTotalVMs   int     `mapstructure:"max_total_vms" yaml:"max_total_vms"`
	MaxClusterVMs int     `mapstructure:"max_cluster_vms" yaml:"max_cluster_vms"`
	MaxWorkers    int     `mapstructure:"max_workers" yaml:"max_workers"`
	WarnRatio     float64 `mapstructure:"warn_ratio" yaml:"warn_ratio"`
}

// NetworkSettings are the address defaults used by allocation and env planning.
type NetworkSettings struct {
	DefaultFirstIP    string `mapstructure:"default_first_ip" yaml:"default_first_ip"`
	ManagementFirstIP string `mapstructure:"management_first_ip" yaml:"management_first_ip"`
	PodCIDR           string `mapstructure:"pod_cidr" yaml:"pod_cidr"`
	ServiceCIDR       string `mapstructure:"service_cidr" yaml:"service_cidr"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Policy: PolicySettings{
			MaxTotalVMs:   DefaultMaxTotalVMs,
			MaxClusterVMs: DefaultMaxClusterVMs,
			MaxWorkers:    DefaultMaxWorkers,
			WarnRatio:     DefaultWarnRatio,
		},
		Network: NetworkSettings{
			DefaultFirstIP:    DefaultFirstIP,
			ManagementFirstIP: DefaultManagementIP,
			PodCIDR:           DefaultPodCIDR,
			ServiceCIDR:       DefaultServiceCIDR,
		},
	}
}

// LoadSettings reads settings from path, or from the default locations when
// path is empty, and applies KUBELAB_* environment overrides.
// A missing default settings file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultSettingsFilename)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kubelab")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("policy.max_total_vms", d.Policy.MaxTotalVMs)
	v.SetDefault("policy.max_cluster_vms", d.Policy.MaxClusterVMs)
	v.SetDefault("policy.max_workers", d.Policy.MaxWorkers)
	v.SetDefault("policy.warn_ratio", d.Policy.WarnRatio)
	v.SetDefault("network.default_first_ip", d.Network.DefaultFirstIP)
	v.SetDefault("network.management_first_ip", d.Network.ManagementFirstIP)
	v.SetDefault("network.pod_cidr", d.Network.PodCIDR)
	v.SetDefault("network.service_cidr", d.Network.ServiceCIDR)
	v.SetDefault("cloud_provider", d.CloudProvider)
}

// Validate checks the settings for values no compilation could succeed with.
func (s *Settings) Validate() error {
	var errs []error

	if s.Policy.MaxTotalVMs < 1 {
		errs = append(errs, errors.New("policy.max_total_vms must be at least 1"))
	}
	if s.Policy.MaxClusterVMs < 1 {
		errs = append(errs, errors.New("policy.max_cluster_vms must be at least 1"))
	}
	if s.Policy.MaxWorkers < 1 {
		errs = append(errs, errors.New("policy.max_workers must be at least 1"))
	}
	if s.Policy.WarnRatio <= 0 || s.Policy.WarnRatio > 1 {
		errs = append(errs, errors.New("policy.warn_ratio must be in (0, 1]"))
	}

	if _, err := ParseFirstIP(s.Network.DefaultFirstIP); err != nil {
		errs = append(errs, fmt.Errorf("network.default_first_ip: %w", err))
	}
	if _, err := ParseFirstIP(s.Network.ManagementFirstIP); err != nil {
		errs = append(errs, fmt.Errorf("network.management_first_ip: %w", err))
	}

	if s.Network.PodCIDR != "" && !netutils.IsIPv4CIDRString(s.Network.PodCIDR) {
		errs = append(errs, fmt.Errorf("network.pod_cidr %q is not an IPv4 CIDR", s.Network.PodCIDR))
	}
	if s.Network.ServiceCIDR != "" && !netutils.IsIPv4CIDRString(s.Network.ServiceCIDR) {
		errs = append(errs, fmt.Errorf("network.service_cidr %q is not an IPv4 CIDR", s.Network.ServiceCIDR))
	}

	switch s.CloudProvider {
	case "", CloudProviderAWS:
	default:
		errs = append(errs, fmt.Errorf("cloud_provider %q is not supported (supported: %s)", s.CloudProvider, CloudProviderAWS))
	}

	return errors.Join(errs...)
}
