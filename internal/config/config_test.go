package config

import (
	"os"
	"testing"

	"github.com/kljama/jmx2influx/internal/influx"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config_test_*.yml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func TestLoadConfigValid(t *testing.T) {
	path := writeTempConfig(t, `influxdb:
  url: "http://localhost:8086"
  username: "user"
  password: "pass"
  database: "jmx"
  write_consistency: "quorum"
  result_tags:
    - "typeName"
    - "objDomain"
  retention_policy: "tenweeks"
  create_database: true
  tags:
    env: "prod"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.InfluxDB == nil {
		t.Fatal("influxdb section not parsed")
	}
	s, err := cfg.InfluxDB.Settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Database != "jmx" {
		t.Errorf("expected database jmx, got %q", s.Database)
	}
	if s.Consistency != influx.ConsistencyQuorum {
		t.Errorf("expected quorum consistency, got %q", s.Consistency)
	}
	if len(s.ResultTags) != 2 || s.ResultTags[0] != influx.TagTypeName {
		t.Errorf("result tags not parsed correctly: %v", s.ResultTags)
	}
	if !s.CreateDatabase || s.RetentionPolicy != "tenweeks" {
		t.Errorf("optional settings not parsed: %+v", s)
	}
	if s.StaticTags["env"] != "prod" {
		t.Errorf("static tags not parsed: %v", s.StaticTags)
	}
}

func TestLoadConfigDefaultsConsistencyAndTags(t *testing.T) {
	path := writeTempConfig(t, `influxdb:
  url: "http://localhost:8086"
  database: "jmx"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	s, err := cfg.InfluxDB.Settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Consistency != "" || s.ResultTags != nil {
		t.Errorf("expected zero-value defaults, got %+v", s)
	}
}

func TestLoadConfigV2Section(t *testing.T) {
	path := writeTempConfig(t, `influxdb_v2:
  url: "http://localhost:8086"
  token: "token"
  org: "org"
  bucket: "bucket"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.InfluxDBV2 == nil || cfg.InfluxDBV2.Bucket != "bucket" {
		t.Errorf("influxdb_v2 section not parsed: %+v", cfg.InfluxDBV2)
	}
}

func TestLoadConfigRejectsBadConsistency(t *testing.T) {
	path := writeTempConfig(t, `influxdb:
  url: "http://localhost:8086"
  database: "jmx"
  write_consistency: "most"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown write consistency")
	}
}

func TestLoadConfigRejectsBadResultTag(t *testing.T) {
	path := writeTempConfig(t, `influxdb:
  url: "http://localhost:8086"
  database: "jmx"
  result_tags:
    - "beanName"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown result tag")
	}
}

func TestLoadConfigRequiresOutput(t *testing.T) {
	path := writeTempConfig(t, `{}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing output section")
	}
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	path := writeTempConfig(t, `influxdb:
  url: "http://localhost:8086"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "not: valid: yaml")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yml"); err == nil {
		t.Error("expected error for missing file")
	}
}
