package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string `mapstructure:"ENV"`
	ServerPort      string `mapstructure:"SERVER_PORT"`
	DbHost          string `mapstructure:"DATABASE_HOST"`
	DbPort          string `mapstructure:"DATABASE_PORT"`
	DbUser          string `mapstructure:"DATABASE_USER"`
	DbPassword      string `mapstructure:"DATABASE_PASSWORD"`
	DbName          string `mapstructure:"DATABASE_NAME"`
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	JwtSecret       string `mapstructure:"JWT_SECRET"`
	AdminUsername   string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`
	AdminEmail      string `mapstructure:"ADMIN_EMAIL"`
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	FrontendUrl     string `mapstructure:"FRONTEND_URL"`
	UploadDir       string `mapstructure:"UPLOAD_DIR"`
	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`
}

var defaults = map[string]string{
	"ENV":               "development",
	"SERVER_PORT":       "5000",
	"DATABASE_HOST":     "localhost",
	"DATABASE_PORT":     "5432",
	"DATABASE_USER":     "postgres",
	"DATABASE_PASSWORD": "",
	"DATABASE_NAME":     "bookstore",
	"REDIS_HOST":        "localhost",
	"REDIS_PORT":        "6379",
	"REDIS_PASSWORD":    "",
	"JWT_SECRET":        "",
	"ADMIN_USERNAME":    "admin",
	"ADMIN_PASSWORD":    "",
	"ADMIN_EMAIL":       "admin@example.com",
	"STRIPE_SECRET_KEY": "",
	"FRONTEND_URL":      "http://localhost:5173",
	"UPLOAD_DIR":        "./uploads",
	"ALLOWED_ORIGINS":   "http://localhost:5173",
}

// LoadConfig reads an optional .env style file at path, then lets the process
// environment override it. A missing file is not an error.
func LoadConfig(path string) (cf *Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err = v.ReadInConfig(); err != nil {
				return
			}
		}
	}

	cf = &Config{}
	if err = v.Unmarshal(cf); err != nil {
		return
	}
	if cf.JwtSecret == "" {
		if cf.IsProduction() {
			err = errors.New("JWT_SECRET must be set in production")
			return
		}
		cf.JwtSecret = "development-secret"
	}
	return
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
