package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and batch settings.
type Config struct {
	// Paths
	BaseDir    string   `json:"base_dir"`
	ModelDir   string   `json:"model_dir"`
	CatalogXML string   `json:"catalog_xml"`
	TextureDir []string `json:"texture_dirs"`
	OutputDir  string   `json:"output_dir"`

	// Batch settings
	SkipNormalize bool `json:"skip_normalize"`
	Previews      bool `json:"previews"`
	PreviewSize   int  `json:"preview_size"`
	Workers       int  `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Raw {
		c.SkipNormalize = true
	}
	if flags.Previews {
		c.Previews = true
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	if c.BaseDir != "" {
		if c.ModelDir == "" {
			c.ModelDir = filepath.Join(c.BaseDir, "models")
		} else {
			c.ModelDir = c.abs(c.ModelDir)
		}

		// An empty catalog means "scan ModelDir".
		if c.CatalogXML == "" {
			if p := filepath.Join(c.BaseDir, "catalog.xml"); fileExists(p) {
				c.CatalogXML = p
			}
		} else {
			c.CatalogXML = c.abs(c.CatalogXML)
		}

		if len(c.TextureDir) == 0 {
			c.TextureDir = []string{filepath.Join(c.ModelDir, "textures")}
		} else {
			for i, d := range c.TextureDir {
				c.TextureDir[i] = c.abs(d)
			}
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "out")
		} else {
			c.OutputDir = c.abs(c.OutputDir)
		}
	}

	// Defaults for batch settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 128
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	OutputDir string
	Workers   int
	Raw       bool // keep source coordinates
	Previews  bool
}

// abs resolves p against BaseDir unless it is already absolute.
func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func detectBaseDir() string {
	// Try current working directory
	cwd, _ := os.Getwd()
	if cwd != "" && dirExists(filepath.Join(cwd, "models")) {
		return cwd
	}

	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if dirExists(filepath.Join(base, "models")) {
				return base
			}
		}
	}

	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
