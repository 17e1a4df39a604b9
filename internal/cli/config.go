package cli

import (
	"context"
	"os"
	"time"

	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/loader"
)

// Config holds the values that can be set in a config file. Every field is
// optional and matches the flag of the same name.
//
//	format: json
//	color: never
//	indent: 4
//	max_depth: 32
//	interval: 500ms
type Config struct {
	Verbose  bool          `whynomatch:"verbose"`
	Format   string        `whynomatch:"format"`
	Color    string        `whynomatch:"color"`
	Indent   *int          `whynomatch:"indent"`
	MaxDepth int           `whynomatch:"max_depth"`
	Interval time.Duration `whynomatch:"interval"`
}

// LoadConfig reads a YAML config file. An empty file is a valid config.
func LoadConfig(ctx context.Context, path string) (Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	v, err := loader.NewLoader(loader.FormatYAML).Load(ctx, path, f)
	if err != nil {
		return cfg, err
	}
	if v == nil {
		return cfg, nil
	}

	if err := decoder.NewDecoder().Decode(v, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
