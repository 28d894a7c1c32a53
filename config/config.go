// Package config loads the pipeline configuration from YAML files and
// DIARIZE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DIARIZE"

// Service is one external model-service endpoint.
type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// Services lists the pyannote-style backends the pipeline calls.
type Services struct {
	Diarization   Service `yaml:"diarization" mapstructure:"diarization"`
	VAD           Service `yaml:"vad" mapstructure:"vad"`
	Overlap       Service `yaml:"overlap" mapstructure:"overlap"`
	Visualization Service `yaml:"visualization" mapstructure:"visualization"`
}

// Audio describes the waveform the diarization service expects.
type Audio struct {
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate"`
	Channels   int `yaml:"channels" mapstructure:"channels"`
}

// Diarization carries the tunables forwarded to the diarization backend.
type Diarization struct {
	MinSpeakers         int     `yaml:"min_speakers" mapstructure:"min_speakers"`
	MaxSpeakers         int     `yaml:"max_speakers" mapstructure:"max_speakers"`
	ClusteringThreshold float64 `yaml:"clustering_threshold" mapstructure:"clustering_threshold"`
}

// Auth holds the model-service access token. Usually supplied through
// DIARIZE_AUTH_TOKEN rather than the config file.
type Auth struct {
	Token string `yaml:"token" mapstructure:"token"`
}

// Paths groups the directories the pipeline reads and writes.
type Paths struct {
	Data    string `yaml:"data" mapstructure:"data"`
	Outputs string `yaml:"outputs" mapstructure:"outputs"`
	Plots   string `yaml:"plots" mapstructure:"plots"`
}

// Root is the full configuration tree.
type Root struct {
	Pipeline struct {
		Name    string `yaml:"name" mapstructure:"name"`
		Version string `yaml:"version" mapstructure:"version"`
		LogLvl  string `yaml:"log_level" mapstructure:"log_level"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Audio          Audio       `yaml:"audio" mapstructure:"audio"`
	Services       Services    `yaml:"services" mapstructure:"services"`
	Diarization    Diarization `yaml:"diarization" mapstructure:"diarization"`
	Auth           Auth        `yaml:"auth" mapstructure:"auth"`
	Paths          Paths       `yaml:"paths" mapstructure:"paths"`
	TimeoutSeconds int         `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Timeout returns the per-request client timeout.
func (r *Root) Timeout() time.Duration { return DurSeconds(r.TimeoutSeconds) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "diarization-pipeline")
	v.SetDefault("pipeline.version", "dev")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.channels", 1)
	v.SetDefault("paths.data", "data")
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("paths.plots", "plots")
	v.SetDefault("timeout_seconds", 300)
	// Registering empty defaults makes these keys visible to Unmarshal
	// when they are set through the environment only.
	v.SetDefault("auth.token", "")
	v.SetDefault("services.diarization.url", "")
	v.SetDefault("services.vad.url", "")
	v.SetDefault("services.overlap.url", "")
	v.SetDefault("services.visualization.url", "")
	v.SetDefault("diarization.min_speakers", 0)
	v.SetDefault("diarization.max_speakers", 0)
	v.SetDefault("diarization.clustering_threshold", 0.0)
}

// Load reads the configuration. When path is empty the usual locations
// are searched: config/<CONFIG_ENV>/ (dev by default), src/shared/ and
// the working directory. A missing file is not an error, defaults and
// environment variables still apply.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	} else {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("config", env))
		v.AddConfigPath(filepath.Join("src", "shared"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes a starter configuration file with the built-in
// defaults filled in.
func WriteDefault(path string) error {
	v := viper.New()
	setDefaults(v)
	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0o644)
}

// DurSeconds converts whole seconds into a duration.
func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
