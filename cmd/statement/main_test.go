package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/movie-rentals/factory"
)

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	for _, key := range []string{"RENTALS_DB", "RENTALS_FORMAT", "RENTALS_TARIFF_FILE", "RENTALS_METRICS_FILE"} {
		t.Setenv(key, "")
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"-log-level", "error"}, args...), &stdout, &stderr)
	return code, stdout.String()
}

func TestRun_WorkedExample(t *testing.T) {
	code, out := runCLI(t, "-db", ":memory:", "-scenario", "worked-example")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Rental Record for Curly\n"+
		"\tJaws\t5.0\n"+
		"\tDune\t6.0\n"+
		"\tBambi\t4.5\n"+
		"Amount owed is 15.5\n"+
		"You earned 4 frequent renter points\n", out)
}

func TestRun_AllCustomersSeparatedByBlankLine(t *testing.T) {
	code, out := runCLI(t, "-db", ":memory:", "-scenario", "household")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Rental Record for Curly\n"+
		"\tBambi\t1.5\n"+
		"Amount owed is 1.5\n"+
		"You earned 1 frequent renter points\n"+
		"\n"+
		"Rental Record for Moe\n"+
		"\tDune\t9.0\n"+
		"\tFish & Chips <Director's Cut>\t2.0\n"+
		"Amount owed is 11.0\n"+
		"You earned 3 frequent renter points\n"+
		"\n"+
		"Rental Record for Shemp\n"+
		"Amount owed is 0.0\n"+
		"You earned 0 frequent renter points\n", out)
}

func TestRun_ImportTariffsAndMetrics(t *testing.T) {
	// GIVEN: A ledger file, a custom tariff file and a metrics path
	// WHEN: Rendering one customer as HTML
	// THEN: The custom prices apply and the metrics textfile is written
	dir := t.TempDir()
	ledger := filepath.Join(dir, "ledger.json")
	require.NoError(t, os.WriteFile(ledger, []byte(`{
		"movies": [{"title": "Jaws", "category": "regular"}],
		"customers": [{"name": "Moe", "rentals": [{"title": "Jaws", "days": 3}]}]
	}`), 0o600))
	tariffs := filepath.Join(dir, "tariffs.json")
	require.NoError(t, os.WriteFile(tariffs, []byte(
		`{"name":"flat","tariffs":[{"category":"regular","daily_rate":"1.25","base_points":2}]}`), 0o600))
	metrics := filepath.Join(dir, "rentals.prom")

	code, out := runCLI(t, "-db", filepath.Join(dir, "shop.db"), "-import", ledger,
		"-tariffs", tariffs, "-format", "html", "-customer", "Moe", "-metrics-file", metrics)

	require.Equal(t, 0, code)
	assert.Equal(t, "<H1>Rentals for <EM>Moe</EM></H1><P>\n"+
		"Jaws: 3.75<BR>\n"+
		"<P>You owe <EM>3.75</EM><P>\n"+
		"On this rental you earned <EM>2</EM> frequent renter points<P>\n", out)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rentals_statements_rendered_total{format="html"} 1`)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"unknown format", []string{"-db", ":memory:", "-scenario", "worked-example", "-format", "pdf"}, 2},
		{"unknown format on empty database", []string{"-db", ":memory:", "-format", "pdf"}, 2},
		{"unknown customer", []string{"-db", ":memory:", "-customer", "Nobody"}, 1},
		{"unknown scenario", []string{"-db", ":memory:", "-scenario", "nope"}, 1},
		{"missing tariff file", []string{"-db", ":memory:", "-tariffs", "/does/not/exist.json"}, 1},
		{"bad log level", []string{"-log-level", "chatty"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_FlagOverridesBadEnvironment(t *testing.T) {
	// GIVEN: RENTALS_FORMAT names an unknown format
	// WHEN: -format names a valid one
	// THEN: The flag wins and the statement renders
	for _, key := range []string{"RENTALS_DB", "RENTALS_TARIFF_FILE", "RENTALS_METRICS_FILE"} {
		t.Setenv(key, "")
	}
	t.Setenv("RENTALS_FORMAT", "pdf")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"-log-level", "error", "-db", ":memory:", "-format", "text", "-scenario", "worked-example"},
		&stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Amount owed is 15.5\n")

	// Without the flag the bad value is rejected before any work.
	stdout.Reset()
	stderr.Reset()
	code = run(context.Background(), []string{"-log-level", "error", "-db", ":memory:"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unknown statement format")
}

func TestRun_InfoCommands(t *testing.T) {
	code, out := runCLI(t, "-list-scenarios")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "worked-example")
	assert.Contains(t, out, "household")

	code, out = runCLI(t, "-print-tariffs")
	assert.Equal(t, 0, code)
	_, err := factory.New().ParseTariffs([]byte(out))
	assert.NoError(t, err)
}
