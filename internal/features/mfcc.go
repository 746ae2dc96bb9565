package features

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// NumCoefficients is the fixed MFCC dimensionality per frame.
	NumCoefficients = 26

	frameSize = 2048
	hopSize   = 512
	numMels   = 40
)

// MFCC computes mel-frequency cepstral coefficients for a mono waveform.
// Output shape is frames x NumCoefficients. Deterministic for identical
// input.
func MFCC(samples []float64, sampleRate int) [][]float64 {
	spec := powerSpectrogram(samples)
	bank := melFilterbank(sampleRate)

	out := make([][]float64, len(spec))
	logMel := make([]float64, numMels)
	for t, frame := range spec {
		for m, filt := range bank {
			var e float64
			for _, w := range filt {
				e += frame[w.bin] * w.weight
			}
			logMel[m] = math.Log(e + 1e-10)
		}
		out[t] = dct2(logMel, NumCoefficients)
	}
	return out
}

// Reduce collapses a frames x coefficients matrix to a single vector by
// averaging the coefficients of each frame. The result's length therefore
// tracks the frame count, which is why batches need padding downstream.
func Reduce(m [][]float64) []float64 {
	out := make([]float64, len(m))
	for t, frame := range m {
		var sum float64
		for _, c := range frame {
			sum += c
		}
		out[t] = sum / float64(len(frame))
	}
	return out
}

// ExpandDims turns a vector into a column matrix (len x 1) for padding.
func ExpandDims(v []float64) [][]float64 {
	out := make([][]float64, len(v))
	for i, x := range v {
		out[i] = []float64{x}
	}
	return out
}

// powerSpectrogram computes the hann-windowed short-time power spectrum.
func powerSpectrogram(x []float64) [][]float64 {
	win := hann(frameSize)
	fft := fourier.NewFFT(frameSize)

	frames := 1
	if len(x) > frameSize {
		frames = 1 + (len(x)-frameSize)/hopSize
	}

	spec := make([][]float64, frames)
	buf := make([]float64, frameSize)
	for i := 0; i < frames; i++ {
		start := i * hopSize
		for k := 0; k < frameSize; k++ {
			if start+k < len(x) {
				buf[k] = x[start+k] * win[k]
			} else {
				buf[k] = 0
			}
		}
		coeffs := fft.Coefficients(nil, buf)
		power := make([]float64, frameSize/2+1)
		for k := range power {
			re := real(coeffs[k])
			im := imag(coeffs[k])
			power[k] = re*re + im*im
		}
		spec[i] = power
	}
	return spec
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

type binWeight struct {
	bin    int
	weight float64
}

// melFilterbank builds numMels triangular filters between 0 Hz and the
// Nyquist frequency, expressed as sparse (bin, weight) lists.
func melFilterbank(sampleRate int) [][]binWeight {
	numBins := frameSize/2 + 1
	melMax := hzToMel(float64(sampleRate) / 2)

	// numMels+2 evenly spaced mel points define the triangle edges
	points := make([]float64, numMels+2)
	for i := range points {
		mel := melMax * float64(i) / float64(numMels+1)
		points[i] = melToHz(mel) / (float64(sampleRate) / 2) * float64(numBins-1)
	}

	bank := make([][]binWeight, numMels)
	for m := 0; m < numMels; m++ {
		left, center, right := points[m], points[m+1], points[m+2]
		var filt []binWeight
		for bin := int(math.Ceil(left)); bin <= int(right) && bin < numBins; bin++ {
			b := float64(bin)
			var w float64
			switch {
			case b < center:
				if center > left {
					w = (b - left) / (center - left)
				}
			default:
				if right > center {
					w = (right - b) / (right - center)
				}
			}
			if w > 0 {
				filt = append(filt, binWeight{bin: bin, weight: w})
			}
		}
		bank[m] = filt
	}
	return bank
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// dct2 computes the first k coefficients of the DCT-II of s.
func dct2(s []float64, k int) []float64 {
	n := len(s)
	out := make([]float64, k)
	for c := 0; c < k; c++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += s[i] * math.Cos(math.Pi*float64(c)*(float64(i)+0.5)/float64(n))
		}
		out[c] = sum
	}
	return out
}
