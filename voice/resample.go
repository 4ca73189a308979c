package voice

// ResampleLinear stretches src to targetLen frames by linear interpolation.
// It changes duration only; pitch follows the stretch ratio.
// Degenerate lengths return an empty slice.
func ResampleLinear(src []float32, targetLen int) []float32 {
	return resampleLinearHead(src, targetLen, targetLen)
}

// resampleLinearHead returns the first n frames of src stretched to
// targetLen, without computing the rest.
func resampleLinearHead(src []float32, targetLen int, n int) []float32 {
	if targetLen <= 0 || n <= 0 || len(src) == 0 {
		return []float32{}
	}
	if n > targetLen {
		n = targetLen
	}
	out := make([]float32, n)
	resampleLinearTo(out, src, targetLen)
	return out
}

// resampleLinearTo fills dst with the leading frames of src stretched to
// targetLen.
func resampleLinearTo(dst []float32, src []float32, targetLen int) {
	n := len(src)
	if n == 0 || targetLen <= 0 {
		return
	}
	ratio := float64(n) / float64(targetLen)
	for i := range dst {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= n {
			idx = n - 1
		}
		frac := float32(pos - float64(idx))
		if idx+1 < n {
			dst[i] = src[idx]*(1.0-frac) + src[idx+1]*frac
		} else {
			// No extrapolation past the last sample.
			dst[i] = src[idx]
		}
	}
}
