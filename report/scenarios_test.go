package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/movie-rentals/factory"
	"github.com/warp/movie-rentals/rental"
	"github.com/warp/movie-rentals/rental/store"
	"github.com/warp/movie-rentals/report"
)

// nonResettable hides Memory.Reset.
type nonResettable struct {
	rental.Store
}

func TestScenarios_AllLoad(t *testing.T) {
	for _, sc := range report.Scenarios() {
		t.Run(sc.ID, func(t *testing.T) {
			f := newFixture(t)
			sum := f.load(t, sc.ID)
			assert.Positive(t, sum.Movies)
			assert.Positive(t, sum.Customers)

			results, err := f.svc.All(context.Background(), rental.FormatText)
			require.NoError(t, err)
			for _, r := range results {
				assert.NoError(t, r.Err, r.Customer)
			}
		})
	}
}

func TestScenarios_LoadReplacesPreviousData(t *testing.T) {
	f := newFixture(t)
	f.load(t, "household")
	sum := f.load(t, "worked-example")
	assert.Equal(t, factory.ImportSummary{Movies: 3, Customers: 1, Rentals: 3}, sum)

	names, err := f.store.Customers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Curly"}, names)
}

func TestScenarios_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := report.NewService(store.NewMemory()).LoadScenario(ctx, "nope")
	assert.ErrorIs(t, err, report.ErrUnknownScenario)

	_, err = report.NewService(nonResettable{store.NewMemory()}).LoadScenario(ctx, "household")
	assert.ErrorIs(t, err, report.ErrResetUnsupported)
}

func TestScenarios_ReturnsCopy(t *testing.T) {
	list := report.Scenarios()
	list[0].ID = "changed"
	assert.NotEqual(t, "changed", report.Scenarios()[0].ID)
}
