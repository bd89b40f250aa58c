// Command lloyd reads a clustering problem from an input stream, runs the
// k-means engine, and prints the resulting clusters.
//
// Input format (whitespace separated):
//
//	<points> <dim> <k> <max_iterations> <has_name: 0|1>
//	<feature_1> ... <feature_dim> [<name>]   (repeated <points> times)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/snapshot"
)

type cliConfig struct {
	input       string
	seed        int64
	workers     int
	k           int
	maxIter     int
	plusplus    bool
	snapshotOut string
	verbose     bool
}

func main() {
	var cfg cliConfig

	flag.StringVar(&cfg.input, "input", "-", "input stream path, or - for stdin")
	flag.Int64Var(&cfg.seed, "seed", lloyd.DefaultSeed, "seed for centroid initialization")
	flag.IntVar(&cfg.workers, "workers", 1, "parallel workers (1 = sequential)")
	flag.IntVar(&cfg.k, "k", 0, "override the cluster count from the input header")
	flag.IntVar(&cfg.maxIter, "max-iter", 0, "override the iteration cap from the input header")
	flag.BoolVar(&cfg.plusplus, "kmeanspp", false, "use k-means++ seeding instead of uniform")
	flag.StringVar(&cfg.snapshotOut, "snapshot", "", "optional path to write the clustering model to")
	flag.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	flag.Parse()

	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, "lloyd:", err)
		os.Exit(1)
	}
}

// resolveParams merges the CLI overrides into the header values. A flag
// value of 0 means no override. The resolved iteration cap must be at
// least 1; headers carrying max_iterations = 0 are rejected rather than
// silently replaced by the engine default.
func resolveParams(header dataset.Header, kOverride, maxIterOverride int) (k, maxIter int, err error) {
	k = header.K
	if kOverride > 0 {
		k = kOverride
	}
	maxIter = header.MaxIterations
	if maxIterOverride > 0 {
		maxIter = maxIterOverride
	}
	if maxIter < 1 {
		return 0, 0, fmt.Errorf("max iterations must be at least 1, got %d (use -max-iter to override)", maxIter)
	}
	return k, maxIter, nil
}

func run(ctx context.Context, cfg cliConfig) error {
	var in io.Reader = os.Stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	ds, header, err := dataset.ReadFrom(in)
	if err != nil {
		return err
	}

	k, maxIter, err := resolveParams(header, cfg.k, cfg.maxIter)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}

	opts := []lloyd.Option{
		lloyd.WithSeed(cfg.seed),
		lloyd.WithMaxIterations(maxIter),
		lloyd.WithWorkers(cfg.workers),
		lloyd.WithLogger(lloyd.NewTextLogger(level)),
	}
	if cfg.plusplus {
		opts = append(opts, lloyd.WithInitializer(lloyd.PlusPlusInitializer{}))
	}

	km, err := lloyd.New(ds, k, opts...)
	if err != nil {
		return err
	}
	result, err := km.Run(ctx)
	if err != nil {
		return err
	}

	report(os.Stdout, ds, result)

	if cfg.snapshotOut != "" {
		store, err := blobstore.NewLocalStore(filepath.Dir(cfg.snapshotOut))
		if err != nil {
			return err
		}
		if err := snapshot.Save(ctx, store, filepath.Base(cfg.snapshotOut), snapshot.FromResult(result)); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return nil
}

func report(w io.Writer, ds *dataset.Dataset, result *lloyd.Result) {
	for j := 0; j < result.K(); j++ {
		fmt.Fprintf(w, "Cluster %d\n", j+1)

		members := result.Members(j)
		it := members.Iterator()
		for it.HasNext() {
			i := int(it.Next())
			var sb strings.Builder
			fmt.Fprintf(&sb, "Point %d:", i+1)
			for _, v := range ds.Point(i) {
				fmt.Fprintf(&sb, " %g", v)
			}
			if name := ds.Name(i); name != "" {
				fmt.Fprintf(&sb, " - %s", name)
			}
			fmt.Fprintln(w, sb.String())
		}

		var sb strings.Builder
		sb.WriteString("Cluster values:")
		for _, v := range result.Centroid(j) {
			fmt.Fprintf(&sb, " %g", v)
		}
		fmt.Fprintln(w, sb.String())
		fmt.Fprintln(w)
	}

	status := "converged"
	if !result.Converged() {
		status = "stopped at iteration cap"
	}
	fmt.Fprintf(w, "%s after %d iterations (WCSS %g)\n", status, result.Iterations(), result.WCSS())
}
