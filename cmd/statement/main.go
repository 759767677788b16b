/*
main.go - Statement tool entry point

PURPOSE:
  Prints rental statements for customers stored in a SQLite database.
  Handles configuration, optional data import, rendering and metrics
  export for a single batch run.

STARTUP SEQUENCE:
  1. Load config from environment (.env honored)
  2. Parse command-line flags (flags override environment), validate
  3. Build logger, metrics and pricing policy
  4. Open SQLite store (migrations applied)
  5. Optionally load a scenario or import a ledger file
  6. Render one or all statements to stdout
  7. Write metrics textfile

COMMAND-LINE FLAGS:
  -db              SQLite database path (RENTALS_DB, default: rentals.db)
                   Use ":memory:" for an in-memory database
  -format          text | html (RENTALS_FORMAT, default: text)
  -customer        Render only this customer (default: all, by name)
  -import          JSON ledger file to append before rendering
  -scenario        Demo data set to load (wipes the database)
  -list-scenarios  Print demo data sets and exit
  -tariffs         JSON tariff file (RENTALS_TARIFF_FILE)
  -print-tariffs   Print the house tariff table as JSON and exit
  -metrics-file    Prometheus textfile output (RENTALS_METRICS_FILE)
  -log-level       debug | info | warn | error (LOG_LEVEL, default: info)

EXIT STATUS:
  0 when every statement rendered, 1 otherwise. Statements that did
  render are still printed. 2 for bad flags or an unknown format.

EXAMPLES:
  # Try it out
  ./statement -db=":memory:" -scenario=worked-example

  # HTML for one customer with a custom price list
  ./statement -db=./shop.db -format=html -customer=Curly -tariffs=summer.json

SEE ALSO:
  - report/service.go: Rendering service
  - config/config.go: Environment keys
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/movie-rentals/config"
	"github.com/warp/movie-rentals/factory"
	"github.com/warp/movie-rentals/logger"
	"github.com/warp/movie-rentals/obs"
	"github.com/warp/movie-rentals/rental"
	"github.com/warp/movie-rentals/report"
	"github.com/warp/movie-rentals/store/sqlite"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dbPath        string
	format        string
	customer      string
	importFile    string
	scenario      string
	listScenarios bool
	tariffFile    string
	printTariffs  bool
	metricsFile   string
	logLevel      string
}

func parseFlags(cfg *config.Config, args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("statement", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.dbPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&o.format, "format", string(cfg.Format), "Statement format (text, html)")
	fs.StringVar(&o.customer, "customer", "", "Render only this customer")
	fs.StringVar(&o.importFile, "import", "", "JSON ledger file to import before rendering")
	fs.StringVar(&o.scenario, "scenario", "", "Demo data set to load (wipes the database)")
	fs.BoolVar(&o.listScenarios, "list-scenarios", false, "List demo data sets and exit")
	fs.StringVar(&o.tariffFile, "tariffs", cfg.TariffFile, "JSON tariff file")
	fs.BoolVar(&o.printTariffs, "print-tariffs", false, "Print the house tariff table and exit")
	fs.StringVar(&o.metricsFile, "metrics-file", cfg.MetricsFile, "Prometheus textfile output path")
	fs.StringVar(&o.logLevel, "log-level", cfg.LogLevel, "Log level")
	return o, fs.Parse(args)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	opts, err := parseFlags(cfg, args, stderr)
	if err != nil {
		return 2
	}
	cfg.Format = rental.Format(opts.format)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	if opts.listScenarios {
		for _, sc := range report.Scenarios() {
			fmt.Fprintf(stdout, "%-16s %s\n", sc.ID, sc.Description)
		}
		return 0
	}
	if opts.printTariffs {
		fmt.Fprintln(stdout, factory.StandardTariffsJSON())
		return 0
	}

	log, err := logger.New(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()
	ctx = logger.NewContext(ctx, log)

	metrics := obs.NewMetrics("rentals")
	code := render(ctx, opts, metrics, stdout)
	if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
		log.Error("metrics export failed", zap.Error(err))
		code = 1
	}
	return code
}

// render does the work between setup and metrics export.
func render(ctx context.Context, opts options, metrics *obs.Metrics, out io.Writer) int {
	log := logger.FromContext(ctx)

	policy := rental.StandardPolicy()
	if opts.tariffFile != "" {
		data, err := os.ReadFile(opts.tariffFile)
		if err != nil {
			log.Error("read tariffs", zap.Error(err))
			return 1
		}
		if policy, err = factory.New().ParseTariffs(data); err != nil {
			log.Error("parse tariffs", zap.String("file", opts.tariffFile), zap.Error(err))
			return 1
		}
	}

	store, err := sqlite.New(opts.dbPath)
	if err != nil {
		log.Error("open database", zap.String("db", opts.dbPath), zap.Error(err))
		return 1
	}
	defer store.Close()

	svc := report.NewService(store, report.WithPolicy(policy), report.WithMetrics(metrics))

	if opts.scenario != "" {
		if _, err := svc.LoadScenario(ctx, opts.scenario); err != nil {
			log.Error("load scenario", zap.String("scenario", opts.scenario), zap.Error(err))
			return 1
		}
	}
	if opts.importFile != "" {
		data, err := os.ReadFile(opts.importFile)
		if err != nil {
			log.Error("read ledger", zap.Error(err))
			return 1
		}
		if _, err := svc.Import(ctx, data); err != nil {
			log.Error("import ledger", zap.String("file", opts.importFile), zap.Error(err))
			return 1
		}
	}

	format := rental.Format(opts.format)
	if opts.customer != "" {
		text, err := svc.Statement(ctx, opts.customer, format)
		if err != nil {
			return 1
		}
		fmt.Fprintln(out, text)
		return 0
	}

	results, err := svc.All(ctx, format)
	if err != nil {
		log.Error("render statements", zap.Error(err))
		return 1
	}
	code, printed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			code = 1
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, r.Output)
		printed++
	}
	return code
}
