package core

import (
	"testing"
	"time"
)

func TestNewConfig_defaults(t *testing.T) {
	t.Setenv("ENV", "")

	conf := NewConfig()
	if conf.Env != "DEV" {
		t.Errorf("Env = %s; want DEV", conf.Env)
	}
	if !conf.Debug {
		t.Error("Debug should default to true in DEV")
	}
	if conf.Navigation.RootPath != "/school" {
		t.Errorf("Navigation.RootPath = %s; want /school", conf.Navigation.RootPath)
	}
	if !conf.Navigation.LegacyKeywordClassifier {
		t.Error("legacy keyword classifier should be on by default")
	}
	if conf.Catalog.Source != CatalogSourceDatabase {
		t.Errorf("Catalog.Source = %s; want %s", conf.Catalog.Source, CatalogSourceDatabase)
	}
	if conf.Session.StateTTL != 12*time.Hour {
		t.Errorf("Session.StateTTL = %s; want 12h", conf.Session.StateTTL)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
}

func TestNewConfig_overrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_NAVIGATION_ROOTPATH", "/campus")
	t.Setenv("TEST_NAVIGATION_LEGACYKEYWORDCLASSIFIER", "false")
	t.Setenv("TEST_CATALOG_SOURCE", "API")
	t.Setenv("TEST_CATALOG_BASEURL", "https://api.masomo.cd/")
	t.Setenv("TEST_CATALOG_TIMEOUT", "90s")
	t.Setenv("TEST_DATABASE_PORT", "6543")

	conf := NewConfig()
	if conf.Env != "TEST" || !conf.TestMode {
		t.Errorf("Env = %s, TestMode = %v; want TEST, true", conf.Env, conf.TestMode)
	}
	if conf.Navigation.RootPath != "/campus" {
		t.Errorf("Navigation.RootPath = %s; want /campus", conf.Navigation.RootPath)
	}
	if conf.Navigation.LegacyKeywordClassifier {
		t.Error("legacy keyword classifier should be disabled")
	}
	if conf.Catalog.Source != CatalogSourceAPI {
		t.Errorf("Catalog.Source = %s; want %s", conf.Catalog.Source, CatalogSourceAPI)
	}
	if conf.Catalog.BaseURL != "https://api.masomo.cd" {
		t.Errorf("Catalog.BaseURL = %s; want trailing slash trimmed", conf.Catalog.BaseURL)
	}
	if conf.Catalog.Timeout != 90*time.Second {
		t.Errorf("Catalog.Timeout = %s; want 90s", conf.Catalog.Timeout)
	}
	if got := conf.Database.Address(); got != "localhost:6543" {
		t.Errorf("Database.Address() = %s; want localhost:6543", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog:    CatalogConfig{Source: CatalogSourceMemory},
			Navigation: NavigationConfig{RootPath: "/school"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "root slash", mutate: func(c *Config) { c.Navigation.RootPath = "/" }},
		{name: "relative root", mutate: func(c *Config) { c.Navigation.RootPath = "school" }, wantErr: true},
		{name: "trailing slash root", mutate: func(c *Config) { c.Navigation.RootPath = "/school/" }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.Catalog.Source = "ldap" }, wantErr: true},
		{name: "api without url", mutate: func(c *Config) { c.Catalog.Source = CatalogSourceAPI }, wantErr: true},
		{name: "api with url", mutate: func(c *Config) { c.Catalog.Source = CatalogSourceAPI; c.Catalog.BaseURL = "http://x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
