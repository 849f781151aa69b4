package gain

import "math"

// Log2 and Exp2 below replace math.Log2/math.Exp2 on the per-sample path.
// Both are plain polynomial evaluations around math.Frexp/math.Ldexp, so
// they are deterministic and cost a handful of multiplies. Absolute error is
// below 1e-8 over the audio range.

const (
	// DBPerLog2 converts log2 amplitude to dB: 20*log10(2).
	DBPerLog2 = 6.020599913279624

	// Log2PerDB converts dB to log2 amplitude: log2(10)/20.
	Log2PerDB = 0.16609640474436813

	sqrtHalf = 0.7071067811865476
	log2e    = 1.4426950408889634
)

// Log2 approximates log2(x) for x > 0. Non-positive input returns MinDB
// expressed in the log2 domain.
func Log2(x float64) float64 {
	if x <= 0 {
		return MinDB * Log2PerDB
	}
	m, e := math.Frexp(x) // x = m * 2^e, m in [0.5, 1)
	if m < sqrtHalf {
		m *= 2
		e--
	}
	// ln(m) = 2*atanh(s) with s = (m-1)/(m+1), |s| < 0.172
	s := (m - 1) / (m + 1)
	s2 := s * s
	ln := 2 * s * (1 + s2*(1.0/3+s2*(1.0/5+s2*(1.0/7+s2*(1.0/9)))))
	return float64(e) + ln*log2e
}

// Exp2 approximates 2^x.
func Exp2(x float64) float64 {
	if x < -1022 {
		return 0
	}
	if x > 1023 {
		return math.Inf(1)
	}
	n := math.Floor(x + 0.5)
	y := (x - n) * math.Ln2 // |y| <= ln2/2
	p := 1 + y*(1+y*(1.0/2+y*(1.0/6+y*(1.0/24+y*(1.0/120+y*(1.0/720+y*(1.0/5040+y*(1.0/40320))))))))
	return math.Ldexp(p, int(n))
}
