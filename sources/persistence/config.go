package persistence

import (
	"reportassist/sources/configuration"
	"time"
)

type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
}

func NewRedisConfig(config *configuration.Config) *RedisConfig {
	return &RedisConfig{
		Enabled:     config.Redis.Enabled,
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		DB:          config.Redis.DB,
		MaxRetries:  config.Redis.MaxRetries,
		DialTimeout: config.Redis.DialTimeout,
	}
}
