package indicator

// RSI computes Wilder's Relative Strength Index over period n. Gains and
// losses are averaged with Wilder smoothing (alpha = 1/n), seeded with the
// simple mean of the first n bar-to-bar changes. Defined from index n
// onward (index 0 is the first close, so the first n diffs span indices
// 1..n).
func RSI(x []float64, n int) []Value {
	out := make([]Value, len(x))
	if n <= 0 || len(x) <= n {
		return out
	}

	var sumGain, sumLoss float64
	for i := 1; i <= n; i++ {
		diff := x[i] - x[i-1]
		if diff > 0 {
			sumGain += diff
		} else {
			sumLoss += -diff
		}
	}
	avgGain := sumGain / float64(n)
	avgLoss := sumLoss / float64(n)
	out[n] = Def(rsiFromAverages(avgGain, avgLoss))

	for i := n + 1; i < len(x); i++ {
		diff := x[i] - x[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(n-1) + gain) / float64(n)
		avgLoss = (avgLoss*float64(n-1) + loss) / float64(n)
		out[i] = Def(rsiFromAverages(avgGain, avgLoss))
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
