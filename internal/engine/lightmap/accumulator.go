package lightmap

// Accumulator is the square buffer that shadow samples are blended into.
// Each texel holds the running fraction of light reaching it.
type Accumulator struct {
	Size int
	Data []float32
}

// NewAccumulator creates a cleared size x size buffer.
func NewAccumulator(size int) *Accumulator {
	size = max(size, 1)
	return &Accumulator{Size: size, Data: make([]float32, size*size)}
}

// Clear zeroes every texel.
func (a *Accumulator) Clear() {
	clear(a.Data)
}

// Blend moves each texel towards the sample by weight w: acc += (s - acc) * w.
func (a *Accumulator) Blend(sample []float32, w float32) {
	n := min(len(sample), len(a.Data))
	for i := 0; i < n; i++ {
		a.Data[i] += (sample[i] - a.Data[i]) * w
	}
}

// Mean returns the average texel value.
func (a *Accumulator) Mean() float32 {
	if len(a.Data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range a.Data {
		sum += float64(v)
	}
	return float32(sum / float64(len(a.Data)))
}
