package searcher

import "math"

type uct struct {
	exploration float64
	logN        float64
}

func newUCT(exploration float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{exploration: exploration, logN: math.Log(float64(N))}
}

// evaluate scores a child with q accumulated rewards over n visits. Rewards are kept from the
// searching player's perspective, so the win rate is flipped when the opponent is the mover.
func (u uct) evaluate(q float64, n int, mover bool) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	winRate := q / float64(n)
	if !mover {
		winRate = Win + Loss - winRate
	}
	return winRate + u.exploration*math.Sqrt(u.logN/float64(n))
}
