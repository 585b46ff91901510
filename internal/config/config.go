package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"tlscompat/internal/compat"
	"tlscompat/pkg/logging"

	"gopkg.in/yaml.v3"
)

// CertificateOverride re-points the certificate material of one signature
// algorithm. Empty fields keep the built-in value.
type CertificateOverride struct {
	CAFile   string `yaml:"caFile"`
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`
}

// Config is the optional generator configuration. It only adjusts where the
// certificate profiles point; the capability tables themselves are closed
// and not extensible.
type Config struct {
	// DataDir replaces the default data_files prefix of every
	// certificate profile.
	DataDir string `yaml:"dataDir"`
	// Certificates overrides individual profiles, keyed by canonical
	// signature algorithm name.
	Certificates map[string]CertificateOverride `yaml:"certificates"`
}

// Load reads the configuration from path. A missing file is not an error:
// the built-in defaults apply.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return cfg, nil
}

// Apply installs the configuration into the capability tables. Must run
// before the first composition; the tables are frozen afterwards. An
// override for a signature algorithm outside the closed set is fatal.
func (c Config) Apply() error {
	if c.DataDir != "" {
		compat.SetDataDir(c.DataDir)
	}

	// Deterministic application order, so a config with several bad keys
	// always fails on the same one.
	algs := make([]string, 0, len(c.Certificates))
	for alg := range c.Certificates {
		algs = append(algs, alg)
	}
	sort.Strings(algs)

	for _, alg := range algs {
		override := c.Certificates[alg]
		err := compat.OverrideCertificateProfile(alg, compat.CertificateProfile{
			CAFile:   override.CAFile,
			CertFile: override.CertFile,
			KeyFile:  override.KeyFile,
		})
		if err != nil {
			return fmt.Errorf("certificate override: %w", err)
		}
	}
	return nil
}
