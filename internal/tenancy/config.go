package tenancy

import (
	"time"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

// OptionsFromConfig converts the tenancy config section into resolver Options.
// Empty fields fall back to the defaults.
func OptionsFromConfig(c config.TenancyConfig) (Options, error) {
	policy, err := ParsePolicy(c.NonRootPolicy)
	if err != nil {
		return Options{}, err
	}

	opts := DefaultOptions()
	opts.NonRootPolicy = policy
	if c.ProductionDomain != "" {
		opts.ProductionDomain = c.ProductionDomain
	}
	if c.LocalDomain != "" {
		opts.LocalDomain = c.LocalDomain
	}
	if c.LandingPrefix != "" {
		opts.LandingPrefix = c.LandingPrefix
	}
	if c.Reserved != nil {
		opts.Reserved = c.Reserved
	}
	if c.ExcludedPrefixes != nil {
		opts.ExcludedPrefixes = c.ExcludedPrefixes
	}
	return opts, nil
}

// ReloadInterval is the polling period; zero disables polling.
func ReloadInterval(c config.TenancyConfig) time.Duration {
	if c.Reload.IntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Reload.IntervalSeconds) * time.Second
}
