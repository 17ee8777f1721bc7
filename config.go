package chjoin

import (
	"github.com/BurntSushi/toml"
)

// Config holds the ambient tunables that are this module's own
// concern (as opposed to the JOIN descriptor, which is query-level
// config owned by the host engine). Grounded on matrixorigin/matrixone's
// use of BurntSushi/toml for server-internal tuning knobs.
type Config struct {
	// MorselSize is the number of left rows handed to one probe
	// worker at a time (parallel.go).
	MorselSize int `toml:"morsel_size"`
	// MinRowsForParallel is the minimum left-block height that
	// triggers parallel probing at all.
	MinRowsForParallel int `toml:"min_rows_for_parallel"`
	// MaxWorkers bounds the ants pool size; 0 means GOMAXPROCS.
	MaxWorkers int `toml:"max_workers"`
	// KnownRowsArraySize is the small-set-first threshold for the
	// multi-disjunct dedup structure. The prober does not read it: its
	// inline array is fixed at 16 entries (the default here), then a
	// hash set.
	KnownRowsArraySize int `toml:"known_rows_array_size"`
	// DefaultMaxRows / DefaultMaxBytes seed size_limits when a
	// descriptor doesn't specify its own (0 = unlimited).
	DefaultMaxRows uint64 `toml:"default_max_rows"`
	DefaultMaxBytes uint64 `toml:"default_max_bytes"`
}

// DefaultConfig returns the module's built-in tunables; no TOML file
// is required to use the package.
func DefaultConfig() Config {
	return Config{
		MorselSize: 4096,
		MinRowsForParallel: 8192,
		MaxWorkers: 0,
		KnownRowsArraySize: 16,
		DefaultMaxRows: 0,
		DefaultMaxBytes: 0,
	}
}

// LoadConfig reads tunables from a TOML file, overlaying them on top
// of DefaultConfig for any field left unset in the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var globalConfig = DefaultConfig()

// SetConfig installs the process-wide Config returned by GetConfig.
// New does not read it (it takes its Config as an argument);
// NewMorselIterator falls back to its MorselSize.
func SetConfig(cfg Config) { globalConfig = cfg }

// GetConfig returns the current process-wide default Config.
func GetConfig() Config { return globalConfig }
