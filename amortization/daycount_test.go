package amortization

import (
	"testing"
	"time"

	"loan-amortizer/domain"
)

func TestDayCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		basis domain.DayCountBasis
		want  float64
	}{
		{"act/360 month", date(2022, time.August, 1), date(2022, time.September, 1), domain.Actual360, 31},
		{"act/360 leap february", date(2024, time.February, 1), date(2024, time.March, 1), domain.Actual360, 29},
		{"act/365 rescaled", date(2022, time.January, 1), date(2023, time.January, 1), domain.Actual365, 360},
		{"30/360 long month", date(2022, time.August, 1), date(2022, time.September, 1), domain.Thirty360, 30},
		{"30/360 short month", date(2022, time.February, 1), date(2022, time.March, 1), domain.Thirty360, 30},
		{"30/360 quarter", date(2022, time.September, 1), date(2022, time.December, 1), domain.Thirty360, 30},
		{"30/360 short stub", date(2022, time.August, 15), date(2022, time.September, 1), domain.Thirty360, 30},
		{"30/360 half year", date(2022, time.September, 1), date(2023, time.March, 1), domain.Thirty360, 30},
		{"30/365 rescaled", date(2022, time.August, 15), date(2022, time.September, 1), domain.DayCountBasis{Numerator: domain.Thirty, Denominator: 365}, 30.0 * 360 / 365},
		{"act same day", date(2022, time.August, 1), date(2022, time.August, 1), domain.Actual360, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayCount(tt.start, tt.end, tt.basis)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("expected %.6f, got %.6f", tt.want, got)
			}
		})
	}
}

func TestDayCount_Idempotent(t *testing.T) {
	a, b := date(2023, time.March, 15), date(2023, time.June, 15)
	for _, basis := range []domain.DayCountBasis{domain.Actual360, domain.Actual365, domain.Thirty360} {
		if DayCount(a, b, basis) != DayCount(a, b, basis) {
			t.Errorf("%s: repeated calls disagree", basis)
		}
	}
}
