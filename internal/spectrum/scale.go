// Package spectrum shapes raw FFT magnitudes into display buckets.
//
// The pipeline is scale (bucket averaging) followed by temporal smoothing.
// Scaling is pure; smoothing carries one frame of state. Handoff connects an
// audio producer goroutine to the render goroutine without blocking the latter.
package spectrum

// Scale averages the lower half of source into bucketCount buckets.
// It returns nil for bucketCount < 1.
func Scale(source []float32, bucketCount int) []float32 {
	if bucketCount < 1 {
		return nil
	}
	return ScaleInto(make([]float32, bucketCount), source)
}

// ScaleInto is Scale without allocation: the bucket count is len(dst).
//
// Only source[:len(source)/2] is used; the upper half is the mirrored part of
// a real FFT. Bucket i averages source[floor(i*b) : min(floor((i+1)*b), half)]
// with b = half/len(dst). A block that rounds to zero width is widened by one
// element so every bucket reads at least one bin.
func ScaleInto(dst, source []float32) []float32 {
	n := len(dst)
	if n == 0 {
		return dst
	}

	half := len(source) / 2
	if half == 0 {
		clear(dst)
		return dst
	}

	blockSize := float64(half) / float64(n)
	for i := range n {
		start := int(float64(i) * blockSize)
		end := min(int(float64(i+1)*blockSize), half)
		if start >= half {
			start = half - 1
		}
		if end <= start {
			end = start + 1
		}

		var sum float32
		for _, v := range source[start:end] {
			sum += v
		}
		dst[i] = sum / float32(end-start)
	}
	return dst
}
