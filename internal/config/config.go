// Package config loads the daemon's YAML configuration file and applies
// the defaults spec.md leaves as "typical" values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML string parsing ("30s", "1h"),
// the common idiom for duration-bearing config structs.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

type HostConfig struct {
	Hostname     string `yaml:"hostname"`
	IP           string `yaml:"ip"`
	IDC          string `yaml:"idc"`
	Location     string `yaml:"location"`
	Port         int32  `yaml:"port"`
	DownloadPort int32  `yaml:"download_port"`
}

type SeedPeerConfig struct {
	Enable    bool   `yaml:"enable"`
	Kind      string `yaml:"kind"`
	ClusterID uint64 `yaml:"cluster_id"`
}

type SchedulerConfig struct {
	Addrs             []string `yaml:"addrs"`
	AnnounceInterval  Duration `yaml:"announce_interval"`
}

type ManagerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type GCConfig struct {
	TaskTTL Duration `yaml:"task_ttl"`
}

type HealthConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the daemon's full configuration surface.
type Config struct {
	Host      HostConfig      `yaml:"host"`
	SeedPeer  SeedPeerConfig  `yaml:"seed_peer"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Manager   ManagerConfig   `yaml:"manager"`
	Storage   StorageConfig   `yaml:"storage"`
	GC        GCConfig        `yaml:"gc"`
	Health    HealthConfig    `yaml:"health"`
}

// Default returns a Config populated with the typical values spec.md
// §4.8 describes, for use when no file is supplied or a field is unset.
func Default() Config {
	return Config{
		Scheduler: SchedulerConfig{
			AnnounceInterval: Duration{30 * time.Second},
		},
		Storage: StorageConfig{
			Dir: "/var/lib/scoutd",
		},
		GC: GCConfig{
			TaskTTL: Duration{1 * time.Hour},
		},
		Health: HealthConfig{
			Addr: ":8080",
		},
	}
}

// Load reads and parses a YAML config file at path, applying defaults
// for anything the file leaves zero-valued.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Scheduler.AnnounceInterval.Duration == 0 {
		cfg.Scheduler.AnnounceInterval = Duration{30 * time.Second}
	}
	if cfg.GC.TaskTTL.Duration == 0 {
		cfg.GC.TaskTTL = Duration{1 * time.Hour}
	}
	if cfg.Health.Addr == "" {
		cfg.Health.Addr = ":8080"
	}

	return &cfg, nil
}
