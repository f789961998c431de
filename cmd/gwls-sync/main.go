// Command gwls-sync provisions a local copy of the warming-level reference
// documents for offline lookups. It fetches each phase's document from
// GitHub raw content and writes it under -dir in the upstream layout, the
// same layout a git clone of mathause/cmip_warming_levels produces. Each
// document is parsed before it is written, so a broken upstream document
// never replaces a good local copy.
//
// Usage:
//
//	go run ./cmd/gwls-sync -dir /var/lib/gwls/cmip_warming_levels
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AusClimateService/gwls/internal/adapter/reference"
	"github.com/AusClimateService/gwls/internal/domain"
	"github.com/AusClimateService/gwls/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "", "directory to write the reference documents into")
	baseURL := flag.String("base-url", reference.DefaultBaseURL, "base URL for reference documents")
	phases := flag.String("phases", strings.Join(domain.Phases, ","), "comma-separated CMIP phases to sync")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout per document")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -dir")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetrics()
	source := reference.NewGitHubSource(*baseURL, *timeout, logger, metrics)

	ctx := context.Background()
	for _, phase := range strings.Split(*phases, ",") {
		phase = strings.ToLower(strings.TrimSpace(phase))
		if !domain.ValidPhase(phase) {
			return fmt.Errorf("unsupported phase %q: must be one of %s", phase, strings.Join(domain.Phases, ", "))
		}
		if err := syncPhase(ctx, source, *dir, phase); err != nil {
			return err
		}
	}

	log.Printf("reference copy ready at %s", *dir)
	return nil
}

func syncPhase(ctx context.Context, source reference.Source, dir, phase string) error {
	text, err := source.Fetch(ctx, phase)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", phase, err)
	}

	if _, err := domain.ParseDocument(text, phase); err != nil {
		return fmt.Errorf("refusing to write %s document: %w", phase, err)
	}

	path := filepath.Join(dir, filepath.FromSlash(reference.DocumentPath(phase)))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Printf("%s: %d bytes -> %s", phase, len(text), path)
	return nil
}
