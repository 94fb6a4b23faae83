package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"DEBUG"`

		Auth   AuthProperties       `envPrefix:"AUTH_"`
		DB     DBProperties         `envPrefix:"DB_"`
		S3     S3Properties         `envPrefix:"S3_"`
		Server HttpServerProperties `envPrefix:"HTTP_"`
	}

	AuthProperties struct {
		JWTSecret      string        `env:"JWT_SECRET"`
		TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
		MinPasswordLen int           `env:"MIN_PASSWORD_LEN" envDefault:"6"`
	}

	DBProperties struct {
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     string `env:"PORT" envDefault:"5432"`
		User     string `env:"USER" envDefault:"gallery"`
		Password string `env:"PASSWORD"`
		Name     string `env:"NAME" envDefault:"gallery"`
		SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"gallery"`
		Port        string        `env:"PORT" envDefault:"8088"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	S3Properties struct {
		Host        string        `env:"HOST" envDefault:"s3.minio.local:9000"`
		AccessKey   string        `env:"ACCESS_KEY"`
		SecretKey   string        `env:"SECRET_KEY"`
		Bucket      string        `env:"BUCKET" envDefault:"gallery"`
		UseSSL      bool          `env:"USE_SSL" envDefault:"true"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}
)

func (d DBProperties) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}
