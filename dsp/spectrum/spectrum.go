package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled memory for splitting complex bins into parts.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	buf.data = buf.data[:2*n]
	return buf.data[:n], buf.data[n:], buf
}

// Magnitude returns |X[k]| for each bin. Scratch buffers are pooled, so in
// steady state only the output slice is allocated.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	re, im, buf := getScratch(len(in))
	defer scratchPool.Put(buf)

	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}
	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// Peak returns the index and value of the largest element of x. Ties go to
// the lowest index. An empty slice yields (-1, 0).
func Peak(x []float64) (bin int, value float64) {
	if len(x) == 0 {
		return -1, 0
	}
	for i, v := range x {
		if v > x[bin] {
			bin = i
		}
	}
	return bin, x[bin]
}

// BinFrequency returns the frequency in Hz of bin k of an n-point complex
// DFT. Bins in the upper half map to negative frequencies.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if k >= (n+1)/2 {
		k -= n
	}
	return float64(k) * sampleRate / float64(n)
}
