package pumpfun

// Pre-launch pump.fun coins trade against a virtual constant product pool
// until they graduate to Raydium, so the spot price follows from the
// virtual reserves alone.

// SpotPrice returns the current SOL price of one token on the curve.
func SpotPrice(vSol, vToken float64) float64 {
	if vToken <= 0 {
		return 0
	}
	return vSol / vToken
}
