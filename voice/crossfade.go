package voice

// FadeLength converts a fade duration to frames at sampleRate.
func FadeLength(sampleRate int, seconds float64) int {
	if sampleRate <= 0 || seconds <= 0 {
		return 0
	}
	return int(float64(sampleRate)*seconds + 1e-9)
}

// ApplyCrossfade blends src into dst starting at offset.
//
// Over the first fadeLen frames the existing dst material decays linearly
// while src rises linearly; the two weights sum to one at every frame.
// Frames past the fade window overwrite dst. A src shorter than fadeLen
// stops partway through the ramp. Writes outside dst are dropped.
func ApplyCrossfade(dst []float32, offset int, src []float32, fadeLen int) {
	if fadeLen < 0 {
		fadeLen = 0
	}
	for i, s := range src {
		j := offset + i
		if j < 0 {
			continue
		}
		if j >= len(dst) {
			break
		}
		if i < fadeLen {
			in := float32(i) / float32(fadeLen)
			dst[j] = dst[j]*(1.0-in) + s*in
			continue
		}
		dst[j] = s
	}
}
