package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bookorg/bookstore-service/pkg/auth"
	"github.com/bookorg/bookstore-service/pkg/kafka"
	"github.com/bookorg/bookstore-service/pkg/logger"
	"github.com/bookorg/bookstore-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"BOOKSTORE_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"BOOKSTORE_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Cache struct {
	Size int           `yaml:"size" envconfig:"CACHE_SIZE" default:"1024"`
	TTL  time.Duration `yaml:"ttl" envconfig:"CACHE_TTL" default:"5m"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	JWT      auth.Config  `yaml:"jwt"`
	Cache    Cache        `yaml:"cache"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
