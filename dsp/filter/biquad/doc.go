// Package biquad provides the second-order IIR runtime used to filter
// correlation traces.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain]. [Chain.FilterZeroPhase] runs a cascade forward and then backward
// over a block, which cancels the phase response and squares the magnitude
// response.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
