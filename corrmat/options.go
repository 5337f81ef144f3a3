package corrmat

import (
	"log/slog"

	"github.com/cwbudde/algo-corrmat/dsp/window"
)

// DefaultFilterOrder is the prototype order used by Filter when none is set.
// The forward-backward pass doubles the effective order.
const DefaultFilterOrder = 3

// FilterOption configures Filter.
type FilterOption func(*filterConfig)

type filterConfig struct {
	order int
}

// WithFilterOrder sets the Butterworth prototype order.
func WithFilterOrder(order int) FilterOption {
	return func(cfg *filterConfig) { cfg.order = order }
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	logger *slog.Logger
	hook   func(SkippedInputWarning)
	seed   SeedID
}

// WithLogger receives a Warn record for every skipped Merge input.
func WithLogger(l *slog.Logger) MergeOption {
	return func(cfg *mergeConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithSkipHook is called for every skipped Merge input.
func WithSkipHook(fn func(SkippedInputWarning)) MergeOption {
	return func(cfg *mergeConfig) { cfg.hook = fn }
}

// WithSeedID overrides the identifiers of the merged matrix. Empty fields
// keep the first input's value.
func WithSeedID(id SeedID) MergeOption {
	return func(cfg *mergeConfig) { cfg.seed = id }
}

// TaperOption configures Taper.
type TaperOption func(*taperConfig)

type taperConfig struct {
	typ   window.Type
	slope window.Slope
}

// WithTaperWindow selects the taper shape. Tukey (default) uses the width
// passed to Taper; the other shapes span the whole trace.
func WithTaperWindow(t window.Type) TaperOption {
	return func(cfg *taperConfig) { cfg.typ = t }
}

// WithTaperSlope restricts tapering to one end of the lag axis.
func WithTaperSlope(s window.Slope) TaperOption {
	return func(cfg *taperConfig) { cfg.slope = s }
}

// SNROption configures SNR.
type SNROption func(*snrConfig)

type snrConfig struct {
	robust bool
}

// WithRobustNoise estimates the noise level from the median absolute
// deviation instead of the RMS of the noise window.
func WithRobustNoise() SNROption {
	return func(cfg *snrConfig) { cfg.robust = true }
}
