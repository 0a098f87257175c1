package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Seed.Driver != SeedNone || cfg.Seed.Bucket != "records" {
		t.Fatalf("unexpected seed defaults %+v", cfg.Seed)
	}
	if cfg.Blob.Driver != BlobFilesystem || cfg.Blob.S3Region != "us-east-1" {
		t.Fatalf("unexpected blob defaults %+v", cfg.Blob)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UAMTTA_SEED_DRIVER", "SQLite")
	t.Setenv("UAMTTA_SEED_PATH", "/tmp/seed.db")
	t.Setenv("UAMTTA_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed.Driver != SeedSQLite || cfg.Seed.Path != "/tmp/seed.db" {
		t.Fatalf("unexpected seed config %+v", cfg.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := strings.Join([]string{
		"seed:",
		"  driver: blob",
		"  key: fixtures/records.yaml",
		"blob:",
		"  driver: s3",
		"  s3_bucket: fixtures",
		"  s3_path_style: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed.Driver != SeedBlob || cfg.Seed.Key != "fixtures/records.yaml" {
		t.Fatalf("unexpected seed config %+v", cfg.Seed)
	}
	if cfg.Blob.Driver != BlobS3 || cfg.Blob.S3Bucket != "fixtures" || !cfg.Blob.S3PathStyle {
		t.Fatalf("unexpected blob config %+v", cfg.Blob)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "none", cfg: Config{Seed: SeedConfig{Driver: SeedNone}}},
		{name: "file without path", cfg: Config{Seed: SeedConfig{Driver: SeedFile}}, wantErr: "seed.path"},
		{name: "sqlite ok", cfg: Config{Seed: SeedConfig{Driver: SeedSQLite, Path: "x.db"}}},
		{name: "postgres without dsn", cfg: Config{Seed: SeedConfig{Driver: SeedPostgres}}, wantErr: "seed.dsn"},
		{name: "blob without key", cfg: Config{Seed: SeedConfig{Driver: SeedBlob}, Blob: BlobConfig{Driver: BlobMemory}}, wantErr: "seed.key"},
		{name: "blob s3 without bucket", cfg: Config{Seed: SeedConfig{Driver: SeedBlob, Key: "k"}, Blob: BlobConfig{Driver: BlobS3}}, wantErr: "blob.s3_bucket"},
		{name: "blob unknown driver", cfg: Config{Seed: SeedConfig{Driver: SeedBlob, Key: "k"}, Blob: BlobConfig{Driver: "ftp"}}, wantErr: "unknown blob driver"},
		{name: "unknown seed", cfg: Config{Seed: SeedConfig{Driver: "redis"}}, wantErr: "unknown seed driver"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
