package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	JWT        JWTConfig
	Session    SessionConfig
	Categories CategoriesConfig
	DB         DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string // vacío = sin /docs
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del client token.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SessionConfig slot de sesión persistido y tiempos del panel.
type SessionConfig struct {
	Store       string // memory | redis
	RedisURL    string
	RedisTTL    time.Duration
	Key         string
	LoginDelay  time.Duration
	FeedbackTTL time.Duration
	IdleTimeout time.Duration // Workspaces sin actividad se descartan
	MaxClients  int           // tope de Workspaces vivos
}

// CategoriesConfig origen de la colección inicial.
type CategoriesConfig struct {
	Source   string // static | yaml | postgres
	SeedFile string
}

// DBConfig configuración de PostgreSQL (sólo para CATEGORY_SOURCE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper arma la Config a partir de una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "catalog-admin"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*30),
			Issuer:     getString(v, "JWT_ISSUER", "catalog-admin"),
		},
		Session: SessionConfig{
			Store:       strings.ToLower(getString(v, "SESSION_STORE", "memory")),
			RedisURL:    getString(v, "REDIS_URL", ""),
			RedisTTL:    time.Duration(getInt(v, "SESSION_TTL_MINUTES", 0)) * time.Minute,
			Key:         getString(v, "SESSION_KEY", "user"),
			LoginDelay:  time.Duration(getInt(v, "LOGIN_DELAY_MS", 1000)) * time.Millisecond,
			FeedbackTTL: time.Duration(getInt(v, "FEEDBACK_TTL_MS", 3000)) * time.Millisecond,
			IdleTimeout: time.Duration(getInt(v, "WORKSPACE_IDLE_MINUTES", 60)) * time.Minute,
			MaxClients:  getInt(v, "WORKSPACE_MAX", 10000),
		},
		Categories: CategoriesConfig{
			Source:   strings.ToLower(getString(v, "CATEGORY_SOURCE", "static")),
			SeedFile: getString(v, "CATEGORY_SEED_FILE", "./config/categories.yaml"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.App.Env == "production" {
			return fmt.Errorf("config: JWT_SECRET es obligatorio en production")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Session.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL es obligatorio con SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("config: SESSION_STORE desconocido %q", c.Session.Store)
	}
	switch c.Categories.Source {
	case "static", "yaml", "postgres":
	default:
		return fmt.Errorf("config: CATEGORY_SOURCE desconocido %q", c.Categories.Source)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
