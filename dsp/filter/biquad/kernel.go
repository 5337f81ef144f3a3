package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

type processFn func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// kernel is one block-processing implementation of a biquad section.
type kernel struct {
	name    string
	level   cpu.SIMDLevel
	process processFn
}

// kernels is ordered by preference; the first entry supported by the
// detected CPU features wins.
var kernels = []kernel{
	{name: "unrolled4", level: cpu.SIMDAVX2, process: processUnrolled4},
	{name: "unrolled2", level: cpu.SIMDNone, process: processUnrolled2},
}

var (
	selected     *kernel
	selectedOnce sync.Once
)

func blockKernel() *kernel {
	selectedOnce.Do(func() {
		selected = lookupKernel(cpu.DetectFeatures())
	})

	return selected
}

func lookupKernel(features cpu.Features) *kernel {
	for i := range kernels {
		if cpu.Supports(features, kernels[i].level) {
			return &kernels[i]
		}
	}

	// SIMDNone is always supported, so this is unreachable unless the table
	// is edited.
	panic("biquad: no block kernel for detected CPU features")
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	return blockKernel().name
}

func processUnrolled2(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}

func processUnrolled4(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+3 < n; i += 4 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d00 := b1*x0 - a1*y0 + d1
		d10 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d00
		d01 := b1*x1 - a1*y1 + d10
		d11 := b2*x1 - a2*y1

		x2 := buf[i+2]
		y2 := b0*x2 + d01
		d02 := b1*x2 - a1*y2 + d11
		d12 := b2*x2 - a2*y2

		x3 := buf[i+3]
		y3 := b0*x3 + d02
		d0 = b1*x3 - a1*y3 + d12
		d1 = b2*x3 - a2*y3

		buf[i] = y0
		buf[i+1] = y1
		buf[i+2] = y2
		buf[i+3] = y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
