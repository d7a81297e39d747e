package service

import (
	"context"
	"testing"

	"loan-amortizer/domain"
)

func generate(t *testing.T, svc *ScheduleService, req domain.ScheduleRequest) domain.Schedule {
	t.Helper()
	sched, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return sched
}

func TestTabulate_Simple(t *testing.T) {
	svc := NewScheduleService(nil, &MockCacheRepository{}, ScheduleConfig{}, discardLogger())
	sched := generate(t, svc, domain.ScheduleRequest{Loan: referenceInput(), Strategy: "mortgage"})

	table := Tabulate(sched, domain.SimpleFormat)

	if len(table.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %v", table.Columns)
	}
	if len(table.Rows) != len(sched.Rows) {
		t.Fatalf("expected %d rows, got %d", len(sched.Rows), len(table.Rows))
	}
	want := []string{"2022-08-01", "2022-09-01", "600000.00"}
	for i, v := range want {
		if table.Rows[0][i] != v {
			t.Errorf("column %s: expected %s, got %s", table.Columns[i], v, table.Rows[0][i])
		}
	}
}

func TestTabulate_FullFixed(t *testing.T) {
	svc := NewScheduleService(nil, &MockCacheRepository{}, ScheduleConfig{}, discardLogger())
	sched := generate(t, svc, domain.ScheduleRequest{Loan: referenceInput(), Strategy: "mortgage"})

	table := Tabulate(sched, domain.FullFormat)

	if len(table.Columns) != len(fullColumns) {
		t.Fatalf("expected %d columns, got %d", len(fullColumns), len(table.Columns))
	}
	first := table.Rows[0]
	if first[0] != "1" {
		t.Errorf("expected payment number 1, got %s", first[0])
	}
	if first[6] != "4289.65" {
		t.Errorf("expected period payment 4289.65, got %s", first[6])
	}
}

func TestTabulate_FullFloatingAddsRate(t *testing.T) {
	curves := newCurveService()
	if _, err := curves.Store(domain.OneMonthTerm, flatCurve(0.05), "test"); err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := NewScheduleService(curves, &MockCacheRepository{}, ScheduleConfig{}, discardLogger())
	sched := generate(t, svc, domain.ScheduleRequest{Loan: referenceInput(), Strategy: "mortgage", RateType: "floating"})

	table := Tabulate(sched, domain.FullFormat)

	last := len(table.Columns) - 1
	if table.Columns[last] != rateColumn {
		t.Fatalf("expected last column %q, got %q", rateColumn, table.Columns[last])
	}
	if got := table.Rows[1][last]; got != "5.00" {
		t.Errorf("expected 5.00%% on row 2, got %s", got)
	}
	if len(fullColumns) != last {
		t.Errorf("expected fullColumns to stay unmodified")
	}
}
