package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"github.com/warp/movie-rentals/rental"
	"github.com/warp/movie-rentals/store/sqlite"
)

type statementTestContext struct {
	customer *rental.Customer
	output   string
	err      error
}

func (c *statementTestContext) reset() {
	c.customer = nil
	c.output = ""
	c.err = nil
}

func (c *statementTestContext) aCustomerNamed(name string) error {
	c.customer = rental.NewCustomer(name)
	return nil
}

func (c *statementTestContext) rent(category, title string, days int) error {
	cat, err := rental.ParseCategory(category)
	if err != nil {
		return err
	}
	movie, err := rental.NewMovie(title, cat)
	if err != nil {
		return err
	}
	return c.customer.Rent(movie, days)
}

func (c *statementTestContext) theCustomerRents(category, title string, days int) error {
	return c.rent(category, title, days)
}

func (c *statementTestContext) theCustomerTriesToRent(category, title string, days int) error {
	c.err = c.rent(category, title, days)
	return nil
}

func (c *statementTestContext) theStatementIsRendered(format string) error {
	c.output, c.err = c.customer.StatementAs(rental.Format(format))
	return c.err
}

func (c *statementTestContext) theCustomerIsSavedAndReloaded() error {
	ctx := context.Background()
	store, err := sqlite.New(":memory:")
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveCustomer(ctx, c.customer.Name()); err != nil {
		return err
	}
	for _, r := range c.customer.Rentals() {
		if err := store.AppendRental(ctx, c.customer.Name(), r); err != nil {
			return err
		}
	}
	c.customer, err = rental.LoadCustomer(ctx, store, c.customer.Name())
	return err
}

func (c *statementTestContext) theChargeForIs(title, want string) error {
	quotes, err := c.customer.Quotes()
	if err != nil {
		return err
	}
	rentals := c.customer.Rentals()
	for i := len(rentals) - 1; i >= 0; i-- {
		if rentals[i].Title() != title {
			continue
		}
		if !quotes[i].Charge.Equal(decimal.RequireFromString(want)) {
			return fmt.Errorf("expected charge %s for %q, got %s", want, title, rental.FormatAmount(quotes[i].Charge))
		}
		return nil
	}
	return fmt.Errorf("no rental of %q", title)
}

func (c *statementTestContext) theCustomerEarnsPoints(want int) error {
	got, err := c.customer.TotalPoints()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %d points, got %d", want, got)
	}
	return nil
}

func (c *statementTestContext) theAmountOwedIs(want string) error {
	got, err := c.customer.TotalCharge()
	if err != nil {
		return err
	}
	if rental.FormatAmount(got) != want {
		return fmt.Errorf("expected amount owed %s, got %s", want, rental.FormatAmount(got))
	}
	return nil
}

func (c *statementTestContext) theStatementIsExactly(doc *godog.DocString) error {
	if c.output != doc.Content {
		return fmt.Errorf("statement mismatch\nexpected:\n%q\ngot:\n%q", doc.Content, c.output)
	}
	return nil
}

func (c *statementTestContext) bothStatementsShow(textFormat, htmlFormat, owed string, points int) error {
	text, err := c.customer.StatementAs(rental.Format(textFormat))
	if err != nil {
		return err
	}
	markup, err := c.customer.StatementAs(rental.Format(htmlFormat))
	if err != nil {
		return err
	}
	if !strings.Contains(text, "Amount owed is "+owed+"\n") ||
		!strings.Contains(text, fmt.Sprintf("You earned %d frequent renter points", points)) {
		return fmt.Errorf("text statement totals differ:\n%s", text)
	}
	if !strings.Contains(markup, "<EM>"+owed+"</EM>") ||
		!strings.Contains(markup, fmt.Sprintf("<EM>%d</EM> frequent renter points", points)) {
		return fmt.Errorf("html statement totals differ:\n%s", markup)
	}
	return nil
}

func (c *statementTestContext) theRentalIsRejectedAsAnInvalidDuration() error {
	if c.err == nil {
		return errors.New("expected rental to be rejected but it succeeded")
	}
	if !errors.Is(c.err, rental.ErrInvalidDuration) {
		return fmt.Errorf("expected invalid duration, got %v", c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &statementTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a customer named "([^"]*)"$`, tc.aCustomerNamed)

	// When steps
	ctx.Step(`^the customer rents a (\w+) movie "([^"]*)" for (\d+) days$`, tc.theCustomerRents)
	ctx.Step(`^the customer tries to rent a (\w+) movie "([^"]*)" for (-?\d+) days$`, tc.theCustomerTriesToRent)
	ctx.Step(`^the "([^"]*)" statement is rendered$`, tc.theStatementIsRendered)
	ctx.Step(`^the customer is saved to and reloaded from the database$`, tc.theCustomerIsSavedAndReloaded)

	// Then steps
	ctx.Step(`^the charge for "([^"]*)" is (\d+\.\d+)$`, tc.theChargeForIs)
	ctx.Step(`^the customer earns (\d+) frequent renter points$`, tc.theCustomerEarnsPoints)
	ctx.Step(`^the amount owed is (\d+\.\d+)$`, tc.theAmountOwedIs)
	ctx.Step(`^the statement is exactly:$`, tc.theStatementIsExactly)
	ctx.Step(`^the "([^"]*)" and "([^"]*)" statements both show (\d+\.\d+) owed and (\d+) points$`, tc.bothStatementsShow)
	ctx.Step(`^the rental is rejected as an invalid duration$`, tc.theRentalIsRejectedAsAnInvalidDuration)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"statement.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
