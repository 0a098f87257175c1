package seed

import (
	"context"
	"errors"
	"fmt"

	"uamtta/internal/blob"
	"uamtta/internal/config"
	"uamtta/internal/infra/persistence/memory"
)

// Importer is satisfied by memory.Repository.
type Importer[T any] interface {
	Import(memory.Snapshot[T])
}

// Hydrate loads src, decodes it and replaces the repository state with the
// result. It returns the number of records imported.
func Hydrate[T any](ctx context.Context, repo Importer[T], src Source) (int, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	snap, err := Decode[T](doc)
	if err != nil {
		return 0, err
	}
	repo.Import(snap)
	return len(snap.Entities), nil
}

// FromConfig builds the Source selected by cfg.Seed. It returns a nil Source
// for the none driver. Callers release the source with Close.
func FromConfig(ctx context.Context, cfg config.Config) (Source, error) {
	bucket := cfg.Seed.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	switch cfg.Seed.Driver {
	case "", config.SeedNone:
		return nil, nil
	case config.SeedFile:
		return FileSource{Path: cfg.Seed.Path}, nil
	case config.SeedSQLite:
		src, err := OpenSQLite(cfg.Seed.Path, bucket)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SeedPostgres:
		src, err := OpenPostgres(ctx, cfg.Seed.DSN, bucket)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SeedBlob:
		if cfg.Seed.Key == "" {
			return nil, errors.New("seed.key required for seed driver blob")
		}
		store, err := blob.Open(ctx, cfg.Blob)
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		return BlobSource{Store: store, Key: cfg.Seed.Key}, nil
	default:
		return nil, fmt.Errorf("unknown seed driver %s", cfg.Seed.Driver)
	}
}
