package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/timeconv"
)

// Recipe is an ordered list of processing steps plus the settings shared
// by all of them.
type Recipe struct {
	Logging     LoggingConfig `yaml:"logging"`
	TimeLayout  string        `yaml:"timeLayout"`
	FilterOrder int           `yaml:"filterOrder"`
	Merge       MergeConfig   `yaml:"merge"`
	Steps       []Step        `yaml:"steps"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MergeConfig overrides the identifiers of merged matrices. Empty fields
// keep the first input's value.
type MergeConfig struct {
	Network  string `yaml:"network"`
	Station  string `yaml:"station"`
	Location string `yaml:"location"`
	Channel  string `yaml:"channel"`
}

func (c MergeConfig) seedID() corrmat.SeedID {
	return corrmat.SeedID{Network: c.Network, Station: c.Station, Location: c.Location, Channel: c.Channel}
}

// Step is one operation of a recipe. Op selects the operation; the other
// fields are read only by the operations that use them.
type Step struct {
	Op string `yaml:"op"`

	// filter
	Freqs []float64 `yaml:"freqs,omitempty"`
	Order int       `yaml:"order,omitempty"`

	// trim: Lag holds [start, end] in seconds. Without it, Start and End
	// are absolute times on the lag axis.
	Lag []float64 `yaml:"lag,omitempty"`

	// trim, select, resample
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	// resample: explicit bins, or bins of width Every from Start to End.
	Starts []string      `yaml:"starts,omitempty"`
	Ends   []string      `yaml:"ends,omitempty"`
	Every  time.Duration `yaml:"every,omitempty"`

	// normalize
	Method string `yaml:"method,omitempty"`

	// taper
	Width  float64 `yaml:"width,omitempty"`
	Window string  `yaml:"window,omitempty"`
	Slope  string  `yaml:"slope,omitempty"`

	// shift
	Seconds float64 `yaml:"seconds,omitempty"`
}

// String renders the step with the parameters its operation reads.
func (s Step) String() string {
	switch s.Op {
	case OpFilter:
		return fmt.Sprintf("filter %v Hz order %d", s.Freqs, s.Order)
	case OpTrim:
		if len(s.Lag) > 0 {
			return fmt.Sprintf("trim lag %v s", s.Lag)
		}
		return fmt.Sprintf("trim %s .. %s", s.Start, s.End)
	case OpSelect:
		return fmt.Sprintf("select [%s, %s)", s.Start, s.End)
	case OpResample:
		if s.Every > 0 {
			return fmt.Sprintf("resample every %v from %s to %s", s.Every, s.Start, s.End)
		}
		return fmt.Sprintf("resample %d bins", len(s.Starts))
	case OpNormalize:
		return "normalize " + s.Method
	case OpTaper:
		return fmt.Sprintf("taper %gs %s %s", s.Width, s.Window, s.Slope)
	case OpShift:
		return fmt.Sprintf("shift %gs", s.Seconds)
	}
	return s.Op
}

// Operation names accepted in Step.Op.
const (
	OpFilter    = "filter"
	OpTrim      = "trim"
	OpReverse   = "reverse"
	OpSelect    = "select"
	OpResample  = "resample"
	OpNormalize = "normalize"
	OpTaper     = "taper"
	OpStack     = "stack"
	OpMirror    = "mirror"
	OpShift     = "shift"
)

// ErrInvalidRecipe reports a recipe that cannot be compiled into steps.
var ErrInvalidRecipe = errors.New("pipeline: invalid recipe")

// Load reads a recipe from a YAML file and applies environment overrides.
// An empty path falls back to CORRMAT_RECIPE; with neither set the default
// recipe (no steps) is returned.
func Load(path string) (*Recipe, error) {
	if path == "" {
		path = os.Getenv("CORRMAT_RECIPE")
	}

	r := defaultRecipe()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("recipe file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read recipe: %w", err)
		}
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse recipe: %w", err)
		}
	}

	applyEnvOverrides(&r)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Parse decodes a recipe from YAML without consulting the environment.
func Parse(data []byte) (*Recipe, error) {
	r := defaultRecipe()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func defaultRecipe() Recipe {
	return Recipe{
		Logging:     LoggingConfig{Level: "info", JSON: false},
		TimeLayout:  timeconv.DefaultLayout,
		FilterOrder: corrmat.DefaultFilterOrder,
	}
}

func applyEnvOverrides(r *Recipe) {
	if v := os.Getenv("CORRMAT_LOG_LEVEL"); v != "" {
		r.Logging.Level = v
	}
	if v := os.Getenv("CORRMAT_LOG_FORMAT"); v != "" {
		r.Logging.JSON = strings.EqualFold(v, "json")
	}
	if v := os.Getenv("CORRMAT_TIME_LAYOUT"); v != "" {
		r.TimeLayout = v
	}
	if v := os.Getenv("CORRMAT_FILTER_ORDER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.FilterOrder = n
		}
	}
}

// Validate compiles every step once and reports the first problem.
func (r *Recipe) Validate() error {
	if r.FilterOrder <= 0 {
		return fmt.Errorf("%w: filter order %d", ErrInvalidRecipe, r.FilterOrder)
	}
	_, err := r.compile(timeconv.NewLayout(r.TimeLayout))
	return err
}
