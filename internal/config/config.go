package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kljama/jmx2influx/internal/influx"
)

// InfluxDBConfig configures the v1 output writer.
type InfluxDBConfig struct {
	URL              string            `yaml:"url"`
	Username         string            `yaml:"username"`
	Password         string            `yaml:"password"`
	Database         string            `yaml:"database"`
	WriteConsistency string            `yaml:"write_consistency"`
	ResultTags       []string          `yaml:"result_tags"`
	RetentionPolicy  string            `yaml:"retention_policy"`
	CreateDatabase   bool              `yaml:"create_database"`
	Tags             map[string]string `yaml:"tags"`
	Precision        string            `yaml:"precision"`
}

// InfluxDBV2Config configures the optional v2 output writer.
type InfluxDBV2Config struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

type Config struct {
	InfluxDB   *InfluxDBConfig   `yaml:"influxdb"`
	InfluxDBV2 *InfluxDBV2Config `yaml:"influxdb_v2"`
}

// LoadConfig reads and validates a yaml configuration file. Invalid
// consistency or tag names are rejected here so that writes never
// fail on configuration.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.InfluxDB == nil && cfg.InfluxDBV2 == nil {
		return nil, fmt.Errorf("no output configured: need influxdb or influxdb_v2 section")
	}
	if cfg.InfluxDB != nil {
		if cfg.InfluxDB.URL == "" {
			return nil, fmt.Errorf("influxdb: url is required")
		}
		if cfg.InfluxDB.Database == "" {
			return nil, fmt.Errorf("influxdb: database is required")
		}
		if _, err := cfg.InfluxDB.Settings(); err != nil {
			return nil, fmt.Errorf("influxdb: %w", err)
		}
	}
	if cfg.InfluxDBV2 != nil {
		if cfg.InfluxDBV2.URL == "" {
			return nil, fmt.Errorf("influxdb_v2: url is required")
		}
		if cfg.InfluxDBV2.Bucket == "" {
			return nil, fmt.Errorf("influxdb_v2: bucket is required")
		}
	}

	return &cfg, nil
}

// Settings converts the yaml section into writer settings, validating
// the consistency level and result tag names.
func (c *InfluxDBConfig) Settings() (influx.Settings, error) {
	s := influx.Settings{
		Database:        c.Database,
		RetentionPolicy: c.RetentionPolicy,
		CreateDatabase:  c.CreateDatabase,
		StaticTags:      c.Tags,
		Precision:       c.Precision,
	}
	if c.WriteConsistency != "" {
		consistency, err := influx.ParseConsistency(c.WriteConsistency)
		if err != nil {
			return influx.Settings{}, err
		}
		s.Consistency = consistency
	}
	tags, err := parseResultTags(c.ResultTags)
	if err != nil {
		return influx.Settings{}, err
	}
	s.ResultTags = tags
	return s, nil
}

// ResultTagSelection validates and converts the v2 section's tag
// selection, which reuses the v1 section's result_tags list.
func (c *Config) ResultTagSelection() ([]influx.ResultTag, error) {
	if c.InfluxDB == nil {
		return nil, nil
	}
	return parseResultTags(c.InfluxDB.ResultTags)
}

func parseResultTags(names []string) ([]influx.ResultTag, error) {
	if names == nil {
		return nil, nil
	}
	tags := make([]influx.ResultTag, 0, len(names))
	for _, name := range names {
		t, err := influx.ParseResultTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
