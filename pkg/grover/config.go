package grover

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/cubeq/pkg/cube"
)

// Config describes one search: the move alphabet and sequence length, the
// starting and target edge orientations, and the amplification schedule.
type Config struct {
	// Alphabet lists the move tokens in code order.
	Alphabet []string `yaml:"alphabet" json:"alphabet" validate:"required,min=1,unique,dive,required"`
	// Depth is the sequence length d.
	Depth int `yaml:"depth" json:"depth" validate:"gte=1,lte=16"`
	// BitsPerSymbol is the per-symbol register width; 0 picks the minimum.
	BitsPerSymbol int `yaml:"bits_per_symbol" json:"bits_per_symbol" validate:"gte=0,lte=16"`
	// Scramble lists the edge positions flipped in the starting orientation.
	// Each entry toggles its position, so repeats cancel in pairs.
	Scramble []int `yaml:"scramble" json:"scramble" validate:"dive,gte=0,lte=11"`
	// Target lists the edge positions set in the pattern to reach, toggled
	// like Scramble. Empty means every edge oriented.
	Target []int `yaml:"target" json:"target" validate:"dive,gte=0,lte=11"`
	// Solutions is the assumed number of satisfying sequences; 0 means
	// unknown and is treated as 1.
	Solutions int `yaml:"solutions" json:"solutions" validate:"gte=0"`
	// Iterations overrides the derived round count when positive. Both are
	// capped at MaxIterations.
	Iterations int `yaml:"iterations" json:"iterations" validate:"gte=0,lte=10000"`
	// Shots is the number of samples per run.
	Shots int `yaml:"shots" json:"shots" validate:"gte=1,lte=10000000"`
	// Workers bounds oracle synthesis parallelism; 0 means one per CPU.
	Workers int `yaml:"workers" json:"workers" validate:"gte=0,lte=1024"`
	// Seed fixes the reference simulator's sampling; 0 seeds from the clock.
	Seed int64 `yaml:"seed" json:"seed"`
}

var configValidate = validator.New()

// DefaultConfig returns the four-move, three-deep search for a single F
// scramble.
func DefaultConfig() Config {
	return Config{
		Alphabet: []string{"U", "F", "U'", "F'"},
		Depth:    3,
		Scramble: []int{0, 4, 8, 7},
		Shots:    1024,
		Workers:  1,
	}
}

// Validate checks field ranges. It does not parse the alphabet; New does.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", cube.ErrConfiguration, err)
	}
	return nil
}

// Initial returns the starting orientation described by Scramble.
func (c Config) Initial() ([cube.EdgeCount]uint8, error) {
	return InitialFromScramble(c.Scramble)
}

// LoadConfig starts from DefaultConfig, overlays the file at path if one is
// given and exists (YAML, falling back to JSON), applies CUBEQ_* environment
// overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadConfigFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(cfg *Config) error {
	if v := os.Getenv("CUBEQ_ALPHABET"); v != "" {
		cfg.Alphabet = splitList(v)
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"CUBEQ_DEPTH", &cfg.Depth},
		{"CUBEQ_BITS_PER_SYMBOL", &cfg.BitsPerSymbol},
		{"CUBEQ_SOLUTIONS", &cfg.Solutions},
		{"CUBEQ_ITERATIONS", &cfg.Iterations},
		{"CUBEQ_SHOTS", &cfg.Shots},
		{"CUBEQ_WORKERS", &cfg.Workers},
	}
	for _, e := range ints {
		if v := os.Getenv(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", cube.ErrConfiguration, e.name, v, err)
			}
			*e.dst = n
		}
	}
	if v := os.Getenv("CUBEQ_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CUBEQ_SEED=%q: %v", cube.ErrConfiguration, v, err)
		}
		cfg.Seed = n
	}
	lists := []struct {
		name string
		dst  *[]int
	}{
		{"CUBEQ_SCRAMBLE", &cfg.Scramble},
		{"CUBEQ_TARGET", &cfg.Target},
	}
	for _, e := range lists {
		v, ok := os.LookupEnv(e.name)
		if !ok {
			continue
		}
		var out []int
		for _, f := range splitList(v) {
			n, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", cube.ErrConfiguration, e.name, v, err)
			}
			out = append(out, n)
		}
		*e.dst = out
	}
	return nil
}

// splitList splits on commas and whitespace, dropping empty fields.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
}
