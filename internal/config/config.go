package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khanghh/cas-portal/params"
	"github.com/naoina/toml"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr   = ":3000"
	DefaultStaticDir    = "./static"
	DefaultAppName      = "CAS Portal"
	DefaultCookieMaxAge = 7 * 24 * time.Hour
	DefaultCookieName   = "session_id"
	DefaultPrefsPrefix  = "prefs:"
)

const (
	PrefsBackendStorage = "storage"
	PrefsBackendRedis   = "redis"
	PrefsBackendMySQL   = "mysql"
)

type MySQLConfig struct {
	Dsn             string        `yaml:"dsn"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type SessionConfig struct {
	SessionMaxAge  time.Duration `yaml:"sessionMaxAge"`
	CookieName     string        `yaml:"cookieName"`
	CookieHttpOnly bool          `yaml:"cookieHttpOnly"`
	CookieSecure   bool          `yaml:"cookieSecure"`
}

// GatewayConfig tunes the simulated authentication backend.
type GatewayConfig struct {
	LoginDelay    time.Duration `yaml:"loginDelay"`
	RegisterDelay time.Duration `yaml:"registerDelay"`
	TokenSecret   string        `yaml:"tokenSecret"`
	TokenTTL      time.Duration `yaml:"tokenTTL"`
}

type PreferencesConfig struct {
	Backend   string `yaml:"backend"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type Config struct {
	Debug       bool              `yaml:"debug"`
	AppName     string            `yaml:"appName"`
	ListenAddr  string            `yaml:"listenAddr"`
	StaticDir   string            `yaml:"staticDir"`
	TemplateDir string            `yaml:"templateDir"`
	RedisURL    string            `yaml:"redisURL"`
	Session     SessionConfig     `yaml:"session"`
	MySQL       MySQLConfig       `yaml:"mysql"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	Preferences PreferencesConfig `yaml:"preferences"`
}

func (c *Config) Sanitize() error {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.Session.SessionMaxAge == 0 {
		c.Session.SessionMaxAge = DefaultCookieMaxAge
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Gateway.LoginDelay == 0 {
		c.Gateway.LoginDelay = params.DefaultLoginDelay
	}
	if c.Gateway.RegisterDelay == 0 {
		c.Gateway.RegisterDelay = params.DefaultRegisterDelay
	}
	if c.Gateway.TokenSecret == "" {
		c.Gateway.TokenSecret = params.DefaultTokenSecret
	}
	if c.Gateway.TokenTTL == 0 {
		c.Gateway.TokenTTL = params.DefaultTokenTTL
	}
	if c.Preferences.KeyPrefix == "" {
		c.Preferences.KeyPrefix = DefaultPrefsPrefix
	}

	switch c.Preferences.Backend {
	case "":
		c.Preferences.Backend = PrefsBackendStorage
	case PrefsBackendStorage:
	case PrefsBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("preferences backend %q requires redisURL", c.Preferences.Backend)
		}
	case PrefsBackendMySQL:
		if c.MySQL.Dsn == "" {
			return fmt.Errorf("preferences backend %q requires mysql.dsn", c.Preferences.Backend)
		}
	default:
		return fmt.Errorf("unknown preferences backend %q", c.Preferences.Backend)
	}
	return nil
}

// readTOML decodes a toml file and merges it into v.
func readTOML(v *viper.Viper, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	values := make(map[string]interface{})
	if err := toml.Unmarshal(data, &values); err != nil {
		return err
	}
	return v.MergeConfigMap(values)
}

// LoadConfig reads a yaml config file, or a toml one when the file name
// ends with .toml.
func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		if err := readTOML(v, filename); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigFile(filename)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
