package amortization

import (
	"loan-amortizer/domain"
)

const hybridBlockPeriods = 12

// hybridRows starts from the mortgage-style schedule and, block by block of
// twelve periods, replaces each period's principal with the block average.
// Interest is then recomputed on a balance that runs down by the averaged
// principal and carries over from one block to the next.
func hybridRows(terms domain.LoanTerms, periods []domain.Period) ([]domain.ScheduleRow, error) {
	base, err := mortgageRows(terms, periods)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ScheduleRow, 0, len(base))
	balance := terms.Notional
	for lo := 0; lo < len(base); lo += hybridBlockPeriods {
		block := base[lo:min(lo+hybridBlockPeriods, len(base))]
		principal := averagePrincipal(block)
		for _, r := range block {
			interest := accrue(balance, terms, r.Period)
			rows = append(rows, newRow(r.Period, balance, roundCents(interest+principal), principal))
			balance = roundCents(balance - principal)
		}
	}
	return rows, nil
}

func averagePrincipal(block []domain.ScheduleRow) float64 {
	var sum float64
	for _, r := range block {
		sum += r.Principal
	}
	return roundCents(sum / float64(len(block)))
}
