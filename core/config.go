package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// catalog sources
const (
	CatalogSourceAPI      = "api"
	CatalogSourceDatabase = "database"
	CatalogSourceMemory   = "memory"
)

type (
	ServerConfig struct {
		Address            string
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTIssuer          string
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		Name          string
		DisableTLS    bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	CatalogConfig struct {
		Source   string // api | database | memory
		BaseURL  string
		Token    string
		Timeout  time.Duration
		CacheTTL time.Duration // 0 disables the redis cache
	}

	NavigationConfig struct {
		RootPath                string
		LegacyKeywordClassifier bool
	}

	SessionConfig struct {
		StateTTL time.Duration
	}

	Config struct {
		Debug        bool
		TestMode     bool
		Env          string
		Build        string
		AppName      string
		SecretKey    string
		RollbarToken string
		Server       ServerConfig
		Database     DatabaseConfig
		Redis        RedisConfig
		Catalog      CatalogConfig
		Navigation   NavigationConfig
		Session      SessionConfig
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewConfig loads the configuration for the current ENV (DEV by default).
// Values come from, in order of precedence: environment variables prefixed with the env name
// (eg. DEV_DATABASE_HOST), config/.env.<env> then the defaults below.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtIssuer", "Masomo")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.user", "masomo")
	v.SetDefault("database.password", "masomo")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "masomo")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("catalog.source", CatalogSourceDatabase)
	v.SetDefault("catalog.baseURL", "http://localhost:8080/api")
	v.SetDefault("catalog.token", "")
	v.SetDefault("catalog.timeout", 5*time.Second)
	v.SetDefault("catalog.cacheTTL", time.Minute)

	v.SetDefault("navigation.rootPath", "/school")
	v.SetDefault("navigation.legacyKeywordClassifier", true)

	v.SetDefault("session.stateTTL", 12*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:            v.GetString("server.address"),
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTIssuer:          v.GetString("server.jwtIssuer"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Catalog: CatalogConfig{
			Source:   strings.ToLower(v.GetString("catalog.source")),
			BaseURL:  strings.TrimRight(v.GetString("catalog.baseURL"), "/"),
			Token:    v.GetString("catalog.token"),
			Timeout:  v.GetDuration("catalog.timeout"),
			CacheTTL: v.GetDuration("catalog.cacheTTL"),
		},
		Navigation: NavigationConfig{
			RootPath:                v.GetString("navigation.rootPath"),
			LegacyKeywordClassifier: v.GetBool("navigation.legacyKeywordClassifier"),
		},
		Session: SessionConfig{
			StateTTL: v.GetDuration("session.stateTTL"),
		},
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogSourceAPI:
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("config: catalog.baseURL is required for the %q catalog source", c.Catalog.Source)
		}
	case CatalogSourceDatabase, CatalogSourceMemory:
	default:
		return fmt.Errorf("config: unknown catalog source %q", c.Catalog.Source)
	}
	if !strings.HasPrefix(c.Navigation.RootPath, "/") {
		return fmt.Errorf("config: navigation.rootPath must be absolute, got %q", c.Navigation.RootPath)
	}
	if len(c.Navigation.RootPath) > 1 && strings.HasSuffix(c.Navigation.RootPath, "/") {
		return fmt.Errorf("config: navigation.rootPath must not end with a slash, got %q", c.Navigation.RootPath)
	}
	return nil
}
