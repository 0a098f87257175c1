// Command repo-seed hydrates an in-memory record repository from the
// configured seed source and prints its contents as YAML.
//
//	repo-seed [-config uamtta.yaml] [-take N] [-metrics]
//
// Without -take every record is printed in iteration order. With -take the
// first N records are printed; asking for more than are stored (or N <= 0)
// fails with "Empty repository".
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"uamtta/internal/config"
	"uamtta/internal/infra/metrics"
	"uamtta/internal/infra/persistence/memory"
	"uamtta/internal/logging"
	"uamtta/internal/seed"
	"uamtta/pkg/domain"
)

var exitFunc = os.Exit

const repositoryName = "records"

func main() {
	code := cli(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

type options struct {
	configPath  string
	take        int
	takeSet     bool
	dumpMetrics bool
}

func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repo-seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a uamtta config file")
	fs.IntVar(&opts.take, "take", 0, "print only the first N records")
	fs.BoolVar(&opts.dumpMetrics, "metrics", false, "write repository metrics to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "take" {
			opts.takeSet = true
		}
	})

	if err := run(ctx, opts, stdout, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "repo-seed: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, stderr)
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheus(reg, repositoryName)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	repo := memory.NewRepository[*domain.Record](
		memory.WithName(repositoryName),
		memory.WithLogger(logger),
		memory.WithMetrics(recorder),
	)

	src, err := seed.FromConfig(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("open seed source: %w", err)
	}
	if src != nil {
		defer func() { _ = seed.Close(src) }()
		n, err := seed.Hydrate[*domain.Record](ctx, repo, src)
		if err != nil {
			return fmt.Errorf("hydrate from %s: %w", src, err)
		}
		logger.Info("repository hydrated", zap.Stringer("source", src), zap.Int("records", n))
	}

	records := repo.GetAll()
	if opts.takeSet {
		if records, err = repo.Take(opts.take); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if opts.dumpMetrics {
		return writeMetrics(reg, stderr)
	}
	return nil
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
