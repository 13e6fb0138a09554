// Package config holds the runtime settings of the command line tool. Values
// come from the process environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings are the runtime knobs that are not part of a scene
type Settings struct {
	Workers       int    // RAYTRACER_WORKERS, 0 = one per CPU
	TileSize      int    // RAYTRACER_TILE_SIZE
	OutputDir     string // RAYTRACER_OUTPUT_DIR
	ThumbnailSize uint   // RAYTRACER_THUMBNAIL_SIZE, 0 disables thumbnails
	ToneMap       string // RAYTRACER_TONE_MAP, "clamp" or "reinhard"
	LogLevel      string // RAYTRACER_LOG_LEVEL

	S3Bucket    string // RAYTRACER_S3_BUCKET, empty disables uploads
	S3Prefix    string // RAYTRACER_S3_PREFIX
	S3Region    string // RAYTRACER_S3_REGION
	S3Endpoint  string // RAYTRACER_S3_ENDPOINT
	S3AccessKey string // RAYTRACER_S3_ACCESS_KEY
	S3SecretKey string // RAYTRACER_S3_SECRET_KEY
}

// Load reads settings from the environment after loading envFile into it.
// Variables already set in the environment win over the file, and a missing
// file is not an error.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var err error
	settings := Settings{
		OutputDir:   getEnv("RAYTRACER_OUTPUT_DIR", "output"),
		ToneMap:     getEnv("RAYTRACER_TONE_MAP", "clamp"),
		LogLevel:    getEnv("RAYTRACER_LOG_LEVEL", "notice"),
		S3Bucket:    getEnv("RAYTRACER_S3_BUCKET", ""),
		S3Prefix:    getEnv("RAYTRACER_S3_PREFIX", "renders"),
		S3Region:    getEnv("RAYTRACER_S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("RAYTRACER_S3_ENDPOINT", ""),
		S3AccessKey: getEnv("RAYTRACER_S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("RAYTRACER_S3_SECRET_KEY", ""),
	}

	if settings.Workers, err = getEnvInt("RAYTRACER_WORKERS", 0); err != nil {
		return Settings{}, err
	}
	if settings.TileSize, err = getEnvInt("RAYTRACER_TILE_SIZE", 32); err != nil {
		return Settings{}, err
	}
	thumbnail, err := getEnvInt("RAYTRACER_THUMBNAIL_SIZE", 0)
	if err != nil {
		return Settings{}, err
	}
	if thumbnail < 0 || settings.Workers < 0 || settings.TileSize < 0 {
		return Settings{}, fmt.Errorf("worker count, tile size and thumbnail size must not be negative")
	}
	settings.ThumbnailSize = uint(thumbnail)

	return settings, nil
}

// UploadEnabled reports whether renders should be uploaded to S3
func (s Settings) UploadEnabled() bool {
	return s.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
