// Command amortize computes one loan schedule and prints it as a table or CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"loan-amortizer/domain"
	"loan-amortizer/repository"
	"loan-amortizer/service"
)

type options struct {
	req       domain.ScheduleRequest
	format    string
	curvePath string
	csv       bool
	verbose   bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "amortize:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("amortize", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	loan := &opts.req.Loan
	fs.StringVar(&loan.SettlementDate, "settlement", "2022-08-01", "settlement date (YYYY-MM-DD or MM/DD/YYYY)")
	fs.StringVar(&loan.MaturityDate, "maturity", "2032-08-01", "maturity date")
	fs.StringVar(&loan.FirstPaymentDate, "first-payment", "2022-09-01", "first payment date")
	fs.Float64Var(&loan.Notional, "notional", 600000, "notional amount")
	fs.Float64Var(&loan.RatePercent, "rate", 7.03, "annual rate in percent")
	fs.StringVar(&loan.BasisNumerator, "basis-num", "ACT", "day-count numerator (ACT or 30)")
	fs.IntVar(&loan.BasisDenominator, "basis-den", 360, "day-count denominator (360 or 365)")
	fs.IntVar(&loan.AmortizationYears, "years", 25, "amortization term in years")
	fs.StringVar(&loan.Frequency, "frequency", "1M", "payment frequency (1M, 3M or 6M)")
	fs.StringVar(&opts.req.Strategy, "strategy", "mortgage", "mortgage, hybrid or straight_line")
	fs.StringVar(&opts.req.ResetFrequency, "reset", "", "floating reset frequency (defaults to -frequency)")
	fs.Float64Var(&opts.req.SpreadPercent, "spread", 0, "floating spread in percent")
	fs.StringVar(&opts.curvePath, "curve", "", "forward curve file (csv, json or yaml); enables floating rate")
	fs.StringVar(&opts.format, "format", "full", "output view: simple or full")
	fs.BoolVar(&opts.csv, "csv", false, "write CSV instead of an aligned table")
	fs.BoolVar(&opts.verbose, "v", false, "log to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.curvePath != "" {
		opts.req.RateType = string(domain.FloatingType)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	format, err := domain.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	curves := service.NewCurveService(repository.NewCurveRepositoryMemory(), nil, logger)
	if opts.curvePath != "" {
		reset := opts.req.ResetFrequency
		if reset == "" {
			reset = opts.req.Loan.Frequency
		}
		freq, err := domain.ParseFrequency(reset)
		if err != nil {
			return err
		}
		if _, err := curves.LoadFile(domain.CurveTermFor(freq), opts.curvePath); err != nil {
			return err
		}
	}

	svc := service.NewScheduleService(curves, repository.NewMemoryCache(), service.ScheduleConfig{}, logger)
	sched, err := svc.Generate(ctx, opts.req)
	if err != nil {
		return err
	}

	table := service.Tabulate(sched, format)
	if opts.csv {
		return writeCSV(out, table)
	}
	return writeTable(out, sched, table)
}

func writeCSV(out io.Writer, table service.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return err
	}
	return w.Error()
}

func writeTable(out io.Writer, sched domain.Schedule, table service.Table) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t")+"\t")
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%s schedule, %d payments: total paid %.2f, principal %.2f, interest %.2f\n",
		sched.Strategy, len(sched.Rows), sched.Totals.Payments, sched.Totals.Principal, sched.Totals.Interest)
	return err
}
