// Package config собирает настройки процесса из .env и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultDatabase = "shagun_fabrics"

type Config struct {
	Port          int
	DatabaseURL   string
	MongoDatabase string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadsDir     string
	UploadMaxWidth uint

	LogLevel slog.Level
	GinMode  string
}

// MediaConfigured сообщает, заданы ли все ключи Cloudinary
func (c Config) MediaConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Load reads an optional .env file, then the environment.
// Variables already set in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", 5000)
	v.SetDefault("mongo_db", DefaultDatabase)
	v.SetDefault("uploads_dir", "uploads")
	v.SetDefault("upload_max_width", 1600)
	v.SetDefault("log_level", "info")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// MONGO_URI is the historical name of the connection string
	_ = v.BindEnv("database_url", "DATABASE_URL", "MONGO_URI")
	for _, key := range []string{"cloudinary_cloud_name", "cloudinary_api_key", "cloudinary_api_secret", "gin_mode"} {
		_ = v.BindEnv(key)
	}

	cfg := Config{
		Port:                v.GetInt("port"),
		DatabaseURL:         v.GetString("database_url"),
		MongoDatabase:       v.GetString("mongo_db"),
		CloudinaryCloudName: v.GetString("cloudinary_cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary_api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary_api_secret"),
		UploadsDir:          v.GetString("uploads_dir"),
		GinMode:             v.GetString("gin_mode"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", v.GetString("port"))
	}
	width := v.GetInt("upload_max_width")
	if width < 0 {
		return Config{}, fmt.Errorf("invalid UPLOAD_MAX_WIDTH %d", width)
	}
	cfg.UploadMaxWidth = uint(width)
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return cfg, nil
}
