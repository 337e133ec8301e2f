package splitter

import (
	"compress/gzip"
	"fmt"
	"os"

	"github.com/midbel/toml"
)

const DefaultFiles = 24

type Config struct {
	Files int    `toml:"nfiles"`
	Dir   string `toml:"output-dir"`
	Gzip  bool   `toml:"gzip"`
	Level int    `toml:"level"`
	Jobs  int    `toml:"jobs"`
	Rate  int64  `toml:"rate"`
}

func Default() Config {
	return Config{
		Files: DefaultFiles,
		Dir:   os.TempDir(),
		Level: gzip.DefaultCompression,
		Jobs:  1,
	}
}

// LoadConfig reads the settings found in file. Settings missing from file
// keep their default value.
func LoadConfig(file string) (Config, error) {
	c := Default()
	if err := toml.DecodeFile(file, &c); err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrUsage, file, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Files < 1 {
		return fmt.Errorf("%w: number of files should be at least 1 (got %d)", ErrUsage, c.Files)
	}
	// level only matters when output files are compressed
	if c.Gzip && !validLevel(c.Level) {
		return fmt.Errorf("%w: invalid compression level %d", ErrUsage, c.Level)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: invalid number of jobs %d", ErrUsage, c.Jobs)
	}
	if c.Rate < 0 {
		return fmt.Errorf("%w: invalid rate %d", ErrUsage, c.Rate)
	}
	return nil
}
