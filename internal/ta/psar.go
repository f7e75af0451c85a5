package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// ParabolicSAR computes the parabolic stop-and-reverse level. Values start at
// the second bar; the initial trend direction is taken from the first close
// change.
func ParabolicSAR(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.ParabolicSAR)
	if !ok {
		return nil, badSettings("psar", s)
	}
	out := newResults(bars)
	if len(bars) < 2 {
		return out, nil
	}

	rising := bars[1].Close >= bars[0].Close
	af := st.AccelerationStep
	var sar, ep float64
	if rising {
		sar = bars[0].Low
		ep = bars[1].High
	} else {
		sar = bars[0].High
		ep = bars[1].Low
	}
	out[1].SAR = fp(sar)

	for i := 2; i < len(bars); i++ {
		sar = sar + af*(ep-sar)

		// SAR must not enter the prior two bars' range.
		if rising {
			if sar > bars[i-1].Low {
				sar = bars[i-1].Low
			}
			if sar > bars[i-2].Low {
				sar = bars[i-2].Low
			}
		} else {
			if sar < bars[i-1].High {
				sar = bars[i-1].High
			}
			if sar < bars[i-2].High {
				sar = bars[i-2].High
			}
		}

		if rising {
			if bars[i].Low < sar {
				// Reversal to falling.
				rising = false
				sar = ep
				ep = bars[i].Low
				af = st.AccelerationStep
			} else if bars[i].High > ep {
				ep = bars[i].High
				af += st.AccelerationStep
				if af > st.MaxAcceleration {
					af = st.MaxAcceleration
				}
			}
		} else {
			if bars[i].High > sar {
				// Reversal to rising.
				rising = true
				sar = ep
				ep = bars[i].High
				af = st.AccelerationStep
			} else if bars[i].Low < ep {
				ep = bars[i].Low
				af += st.AccelerationStep
				if af > st.MaxAcceleration {
					af = st.MaxAcceleration
				}
			}
		}

		out[i].SAR = fp(sar)
	}
	return out, nil
}
