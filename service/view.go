package service

import (
	"strconv"

	"loan-amortizer/domain"
)

const dateLayout = "2006-01-02"

// Table is a schedule rendered as labelled string columns.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

var (
	simpleColumns = []string{"Period Start Date", "Period End Date", "Outstanding Balance"}
	fullColumns   = []string{
		"Payment Number",
		"Period Start Date",
		"Period End Date",
		"Payment Date",
		"Days in Period",
		"Outstanding Balance",
		"Period Payment",
		"Principal Payment",
		"Period Interest",
		"Remaining Notional Balance",
	}
)

const rateColumn = "Interest Rate (%)"

// Tabulate down-selects a schedule to the columns of the requested view. The
// full view of a floating schedule adds the effective interest rate.
func Tabulate(sched domain.Schedule, format domain.OutputFormat) Table {
	if format == domain.SimpleFormat {
		t := Table{Columns: simpleColumns, Rows: make([][]string, 0, len(sched.Rows))}
		for _, r := range sched.Rows {
			t.Rows = append(t.Rows, []string{
				r.Start.Format(dateLayout),
				r.End.Format(dateLayout),
				money(r.OpeningBalance),
			})
		}
		return t
	}

	floating := sched.Floating != nil
	cols := fullColumns
	if floating {
		cols = append(append([]string(nil), fullColumns...), rateColumn)
	}
	t := Table{Columns: cols, Rows: make([][]string, 0, len(sched.Rows))}
	for _, r := range sched.Rows {
		row := []string{
			strconv.Itoa(r.Number),
			r.Start.Format(dateLayout),
			r.End.Format(dateLayout),
			r.PaymentDate.Format(dateLayout),
			strconv.FormatFloat(r.Days, 'f', -1, 64),
			money(r.OpeningBalance),
			money(r.Payment),
			money(r.Principal),
			money(r.Interest),
			money(r.ClosingBalance),
		}
		if floating {
			rate := ""
			if r.EffectiveRate != nil {
				rate = money(*r.EffectiveRate)
			}
			row = append(row, rate)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
