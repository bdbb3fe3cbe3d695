package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "PRODUCT_CONFIG_FILE"
	dotenvFile        = "config.env"
)

type postgres struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ProductEventsTopic string   `mapstructure:"product_events_topic"`
}

type Config struct {
	LogLevel     string   `mapstructure:"log_level"`
	Port         int      `mapstructure:"port"`
	PhotoDir     string   `mapstructure:"photo_dir"`
	PhotoURLPath string   `mapstructure:"photo_url_path"`
	Postgres     postgres `mapstructure:"postgres"`
	Broker       broker   `mapstructure:"broker"`
}

// PG_* names match the libpq-style variables already used by deployments.
var envBindings = map[string]string{
	"log_level":                   "LOG_LEVEL",
	"port":                        "PORT",
	"photo_dir":                   "PHOTO_DIR",
	"photo_url_path":              "PHOTO_URL_PATH",
	"postgres.user":               "PG_USER",
	"postgres.password":           "PG_PASSWORD",
	"postgres.host":               "PG_HOST",
	"postgres.port":               "PG_PORT",
	"postgres.database":           "PG_DATABASE",
	"postgres.sslmode":            "PG_SSLMODE",
	"broker.seed_brokers":         "BROKER_SEED_BROKERS",
	"broker.schema_registry_urls": "BROKER_SCHEMA_REGISTRY_URLS",
	"broker.product_events_topic": "BROKER_PRODUCT_EVENTS_TOPIC",
}

var defaults = map[string]any{
	"log_level":                   "info",
	"port":                        8080,
	"photo_dir":                   "public/photo",
	"photo_url_path":              "/photo",
	"postgres.host":               "localhost",
	"postgres.port":               5432,
	"postgres.sslmode":            "require",
	"postgres.user":               "",
	"postgres.password":           "",
	"postgres.database":           "",
	"broker.seed_brokers":         []string{},
	"broker.schema_registry_urls": []string{},
	"broker.product_events_topic": "product-events",
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads config.env, then the optional YAML file at path.
// Environment variables take precedence over the file.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(dotenvFile); err != nil &&
		!errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Broker.SeedBrokers = splitList(cfg.Broker.SeedBrokers)
	cfg.Broker.SchemaRegistryURLs = splitList(cfg.Broker.SchemaRegistryURLs)

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

// splitList accepts comma separated values coming from a single env var.
func splitList(vs []string) []string {
	var res []string
	for _, v := range vs {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, s)
			}
		}
	}
	return res
}

func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func (c Config) HTTPServerAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

// DSN returns a postgres URL. sslmode "require" encrypts the connection
// without verifying the server certificate.
func (p postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.Database,
	}
	q := url.Values{}
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	PhotoDir=%q
	PhotoURLPath=%q

	Postgres:
	User=%q
	Password=%q
	Host=%q
	Port=%d
	Database=%q
	SSLMode=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ProductEventsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr(),
		c.PhotoDir,
		c.PhotoURLPath,
		c.Postgres.User,
		mask(c.Postgres.Password),
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Database,
		c.Postgres.SSLMode,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ProductEventsTopic,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
