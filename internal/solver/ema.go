package solver

// ema is an exponential moving average, adapted from the teacher's
// sat.EMA. The solver keeps two of these — one tracking the LBD of
// recent conflicts over a short window, one over a long window — and
// restarts once the short-term average climbs well above the long-term
// one (the search is thrashing on hard conflicts), a glucose-style
// restart policy instead of the teacher's fixed geometric schedule.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}
