package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	LogLevel      string
	ListenAddr    string
}

// Load reads configuration from an optional config.yaml and the environment.
// Environment variables win and use underscore keys (DB_HOST, LOG_LEVEL, ...).
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "tracker")
	v.SetDefault("db.password", "tracker")
	v.SetDefault("db.name", "tracker")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("listen.addr", ":8080")

	// Config file is optional; env vars and defaults cover every key.
	_ = v.ReadInConfig()

	return &Config{
		DBHost:        v.GetString("db.host"),
		DBPort:        v.GetString("db.port"),
		DBUser:        v.GetString("db.user"),
		DBPassword:    v.GetString("db.password"),
		DBName:        v.GetString("db.name"),
		RedisHost:     v.GetString("redis.host"),
		RedisPort:     v.GetString("redis.port"),
		SessionSecret: v.GetString("session.secret"),
		GinMode:       v.GetString("gin.mode"),
		LogLevel:      v.GetString("log.level"),
		ListenAddr:    v.GetString("listen.addr"),
	}
}
