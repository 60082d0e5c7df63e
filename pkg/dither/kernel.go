package dither

import "sort"

// Tap is one error diffusion target, relative to the current pixel.
type Tap struct {
	DX     int
	DY     int
	Weight float64
}

// Kernel is an ordered list of taps. Weights usually sum to 1; a kernel
// summing below 1 discards part of the error.
type Kernel []Tap

// Sum returns the total weight of the kernel.
func (k Kernel) Sum() float64 {
	var s float64
	for _, t := range k {
		s += t.Weight
	}
	return s
}

// Kernel names.
const (
	FloydSteinberg    = "floyd-steinberg"
	JarvisJudiceNinke = "jarvis-judice-ninke"
	Atkinson          = "atkinson"
)

var kernels = map[string]Kernel{
	FloydSteinberg: {
		{1, 0, 7.0 / 16.0},
		{-1, 1, 3.0 / 16.0}, {0, 1, 5.0 / 16.0}, {1, 1, 1.0 / 16.0},
	},
	JarvisJudiceNinke: {
		{1, 0, 7.0 / 48.0}, {2, 0, 5.0 / 48.0},
		{-2, 1, 3.0 / 48.0}, {-1, 1, 5.0 / 48.0}, {0, 1, 7.0 / 48.0}, {1, 1, 5.0 / 48.0}, {2, 1, 3.0 / 48.0},
		{-2, 2, 1.0 / 48.0}, {-1, 2, 3.0 / 48.0}, {0, 2, 5.0 / 48.0}, {1, 2, 3.0 / 48.0}, {2, 2, 1.0 / 48.0},
	},
	// Atkinson only propagates 6/8 of the error.
	Atkinson: {
		{1, 0, 1.0 / 8.0}, {2, 0, 1.0 / 8.0},
		{-1, 1, 1.0 / 8.0}, {0, 1, 1.0 / 8.0}, {1, 1, 1.0 / 8.0},
		{0, 2, 1.0 / 8.0},
	},
}

// GrayscaleKernel is the fixed kernel of grayscale error diffusion.
var GrayscaleKernel = Kernel{
	{1, 0, 0.5},
	{0, 1, 0.5},
}

// LookupKernel returns a copy of the named kernel. An unknown name returns
// an empty kernel and false; diffusing with it propagates no error at all.
func LookupKernel(name string) (Kernel, bool) {
	k, ok := kernels[name]
	if !ok {
		return Kernel{}, false
	}
	return append(Kernel(nil), k...), true
}

// KernelNames returns the sorted list of known kernel names.
func KernelNames() []string {
	res := make([]string, 0, len(kernels))
	for k := range kernels {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
