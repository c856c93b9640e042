package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"starforge/internal/entity"
	"starforge/internal/shared/config"
	"starforge/internal/shared/logger"
	"starforge/internal/workspace"
)

type options struct {
	kind    string
	seed    uint64
	seeded  bool
	export  bool
	merged  bool
	compact bool
}

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init()

	var opts options
	flag.StringVar(&opts.kind, "kind", string(entity.KindSystem), "kind of root entity to generate")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed (defaults to STARFORGE_SEED, then the clock)")
	flag.BoolVar(&opts.export, "export", false, "print the external form instead of the saved workspace")
	flag.BoolVar(&opts.merged, "merged", false, "include descendants in the external form")
	flag.BoolVar(&opts.compact, "compact", false, "print JSON without indentation")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seeded = true
		}
	})

	if err := run(os.Stdout, opts, config.GlobalConfig); err != nil {
		slog.Error("Generation failed", "component", "cli", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options, cfg *config.Config) error {
	seed := opts.seed
	switch {
	case opts.seeded:
	case cfg.Generation.Seeded:
		seed = cfg.Generation.Seed
	default:
		seed = uint64(time.Now().UnixNano())
	}

	log := slog.With("component", "cli", "kind", opts.kind, "seed", seed)
	log.Debug("Starting generation")

	svc := workspace.NewService(workspace.NewRepository(), cfg.Rules(), slog.Default())
	e, err := svc.Create(entity.Kind(opts.kind), seed)
	if err != nil {
		return err
	}

	var out any
	if opts.export {
		node, err := svc.ExportNode(e.Base().ID, opts.merged)
		if err != nil {
			return err
		}
		out = node
	} else {
		doc, err := svc.Save()
		if err != nil {
			return err
		}
		out = doc
	}

	enc := json.NewEncoder(w)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Info("Generation complete", "entity_id", e.Base().ID, "name", e.Base().Name, "nodes", entity.Count(e))
	return nil
}
