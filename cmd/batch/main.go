package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"obj-mesh-loader/internal/batch"
	"obj-mesh-loader/internal/catalog"
	"obj-mesh-loader/internal/config"
	"obj-mesh-loader/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Process only first N models for testing")
	group := flag.String("group", "", "Process only models from this group")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to base directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: <data>/out)")
	raw := flag.Bool("raw", false, "Keep source coordinates (skip normalization)")
	previews := flag.Bool("previews", false, "Write WebP previews of diffuse textures")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Raw:       *raw,
		Previews:  *previews,
	})

	if cfg.BaseDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find models directory. Use -data flag or config.json.")
		os.Exit(1)
	}

	// Load model list
	var models []catalog.ModelDef
	var err error
	if cfg.CatalogXML != "" {
		models, err = catalog.Parse(cfg.CatalogXML)
	} else {
		models, err = catalog.Scan(cfg.ModelDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model list: %v\n", err)
		os.Exit(1)
	}

	// Filter by group
	if *group != "" {
		var filtered []catalog.ModelDef
		for _, m := range models {
			if m.Group == *group {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(models) {
		models = models[:*testN]
	}

	if len(models) == 0 {
		fmt.Println("No models to process.")
		os.Exit(0)
	}

	var texCache *texture.Cache
	if cfg.Previews {
		texIndex := texture.BuildIndex(cfg.TextureDir...)
		texCache = texture.NewCache(texIndex)
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	// Print summary
	mode := ""
	if *group != "" {
		mode = fmt.Sprintf(" (group %s)", *group)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("OBJ mesh batch%s\n", mode)
	fmt.Printf("Models: %d, Workers: %d, Normalize: %v\n", len(models), cfg.Workers, !cfg.SkipNormalize)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		ModelDir:    cfg.ModelDir,
		OutputDir:   cfg.OutputDir,
		Normalize:   !cfg.SkipNormalize,
		Previews:    cfg.Previews,
		PreviewSize: cfg.PreviewSize,
		Workers:     cfg.Workers,
	}
	if texCache != nil {
		batchCfg.TexResolver = texCache
	}

	results := batch.Run(batchCfg, models)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var failures []batch.Result
	triangles := 0
	for _, r := range results {
		if r.Success {
			success++
			triangles += r.Triangles
		} else {
			failed++
			failures = append(failures, r)
		}
	}

	fmt.Printf("Loaded: %d/%d (%d triangles)\n", success, len(models), triangles)

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(failures))
		for _, e := range failures[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
