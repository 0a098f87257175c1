// Package config loads runtime configuration from defaults, an optional
// uamtta.yaml file and UAMTTA_* environment variables.
//
//	UAMTTA_LOG_LEVEL            debug|info|warn|error (default info)
//	UAMTTA_LOG_FORMAT           json|console (default json)
//	UAMTTA_SEED_DRIVER          none|file|sqlite|postgres|blob (default none)
//	UAMTTA_SEED_PATH            document path (file) or database path (sqlite)
//	UAMTTA_SEED_DSN             postgres DSN when driver=postgres
//	UAMTTA_SEED_BUCKET          state bucket row to read (default records)
//	UAMTTA_SEED_KEY             blob key when driver=blob
//	UAMTTA_BLOB_DRIVER          fs|s3|memory (default fs)
//	UAMTTA_BLOB_FS_ROOT         directory root when blob driver=fs
//	UAMTTA_BLOB_S3_BUCKET       bucket when blob driver=s3
//	UAMTTA_BLOB_S3_REGION       region (default us-east-1)
//	UAMTTA_BLOB_S3_ENDPOINT     optional custom endpoint (MinIO)
//	UAMTTA_BLOB_S3_PATH_STYLE   true|false
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Seed drivers.
const (
	SeedNone     = "none"
	SeedFile     = "file"
	SeedSQLite   = "sqlite"
	SeedPostgres = "postgres"
	SeedBlob     = "blob"
)

// Blob drivers.
const (
	BlobFilesystem = "fs"
	BlobS3         = "s3"
	BlobMemory     = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Log  LogConfig
	Seed SeedConfig
	Blob BlobConfig
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SeedConfig selects where fixture records are read from.
type SeedConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
}

// BlobConfig selects the blob store used by the blob seed driver.
type BlobConfig struct {
	Driver      string `mapstructure:"driver"`
	FSRoot      string `mapstructure:"fs_root"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3PathStyle bool   `mapstructure:"s3_path_style"`
}

// Load reads configuration. An empty path searches for uamtta.yaml in the
// working directory and ./config; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("UAMTTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("uamtta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.Seed.Driver = strings.ToLower(v.GetString("seed.driver"))
	cfg.Seed.Path = v.GetString("seed.path")
	cfg.Seed.DSN = v.GetString("seed.dsn")
	cfg.Seed.Bucket = v.GetString("seed.bucket")
	cfg.Seed.Key = v.GetString("seed.key")

	cfg.Blob.Driver = strings.ToLower(v.GetString("blob.driver"))
	cfg.Blob.FSRoot = v.GetString("blob.fs_root")
	cfg.Blob.S3Bucket = v.GetString("blob.s3_bucket")
	cfg.Blob.S3Region = v.GetString("blob.s3_region")
	cfg.Blob.S3Endpoint = v.GetString("blob.s3_endpoint")
	cfg.Blob.S3PathStyle = v.GetBool("blob.s3_path_style")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("seed.driver", SeedNone)
	v.SetDefault("seed.path", "")
	v.SetDefault("seed.dsn", "")
	v.SetDefault("seed.bucket", "records")
	v.SetDefault("seed.key", "")

	v.SetDefault("blob.driver", BlobFilesystem)
	v.SetDefault("blob.fs_root", "./blobdata")
	v.SetDefault("blob.s3_bucket", "")
	v.SetDefault("blob.s3_region", "us-east-1")
	v.SetDefault("blob.s3_endpoint", "")
	v.SetDefault("blob.s3_path_style", false)
}

// Validate reports the first missing or unknown setting for the selected
// drivers.
func (c *Config) Validate() error {
	switch c.Seed.Driver {
	case SeedNone:
	case SeedFile, SeedSQLite:
		if c.Seed.Path == "" {
			return fmt.Errorf("seed.path required for seed driver %s", c.Seed.Driver)
		}
	case SeedPostgres:
		if c.Seed.DSN == "" {
			return fmt.Errorf("seed.dsn required for seed driver %s", c.Seed.Driver)
		}
	case SeedBlob:
		if c.Seed.Key == "" {
			return fmt.Errorf("seed.key required for seed driver %s", c.Seed.Driver)
		}
		if err := c.Blob.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown seed driver %s", c.Seed.Driver)
	}
	return nil
}

func (b BlobConfig) validate() error {
	switch b.Driver {
	case BlobFilesystem, BlobMemory:
		return nil
	case BlobS3:
		if b.S3Bucket == "" {
			return fmt.Errorf("blob.s3_bucket required for blob driver %s", b.Driver)
		}
		return nil
	default:
		return fmt.Errorf("unknown blob driver %s", b.Driver)
	}
}
