package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgconv-cli/internal/manifest"
)

// Config holds all parameters for a conversion run.
type Config struct {
	Input     string // file or directory
	OutputDir string
	Workers   int
	MaxWidth  int  // downscale sources wider than this (0 = keep)
	HashNames bool // content-addressed output filenames
	Verbose   bool
}

// Pipeline orchestrates image conversion.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the full conversion run and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Find sources.
	sources, err := Scan(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Input)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgconv] found %d images\n", len(sources))
	}

	// Step 2: Convert in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[imgconv] converting: %s\n", s.RelPath)
			}

			results[idx] = processImage(s, p.cfg)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[imgconv] done: %s -> %s\n",
					s.RelPath, results[idx].entry.Output.Path)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into the manifest.
	m := manifest.New()

	var errs []error
	var downscaled int
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Entries[r.key] = r.entry
		if r.downscaled {
			downscaled++
		}
	}

	// Report errors but don't fail the run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[imgconv] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[imgconv] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.RunInfo = &manifest.RunInfo{
		Workers:  p.cfg.Workers,
		MaxWidth: p.cfg.MaxWidth,
	}
	m.Stats.Downscaled = downscaled
	m.ComputeStats()
	return m, nil
}
