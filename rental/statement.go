/*
statement.go - Statement rendering

PURPOSE:
  Turns a customer's ledger into a human-readable report. The report is a
  fixed sequence: header, one row per rental, footer. Only the literal text
  differs between output formats, so formats implement Template and the
  traversal lives once, in Render.

FLOW:
  Customer -> BuildStatement (quotes + totals) -> Render(template) -> string

  The Statement value is recomputed on every call; nothing is cached.

FORMATS:
  text:
    Rental Record for Curly
    \tJaws\t5.0
    Amount owed is 5.0
    You earned 1 frequent renter points

  html:
    <H1>Rentals for <EM>Curly</EM></H1><P>
    Jaws: 5.0<BR>
    <P>You owe <EM>5.0</EM><P>
    On this rental you earned <EM>1</EM> frequent renter points<P>

ADDING A FORMAT:
  Implement Header, Row and Footer, then RegisterFormat (see format.go).

AMOUNTS:
  FormatAmount prints the shortest plain decimal with at least one
  fractional digit: 0.0, 2.0, 6.5, 3.75. It never uses the locale.
*/
package rental

import (
	"html"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATEMENT VIEW
// =============================================================================

// Line is one priced rental on a statement.
type Line struct {
	Title      string
	Category   PriceCategory
	DaysRented int
	Charge     decimal.Decimal
	Points     int
}

// Statement is the computed view a Template renders.
type Statement struct {
	Customer    string
	Lines       []Line
	TotalCharge decimal.Decimal
	TotalPoints int
}

// BuildStatement prices every rental and the totals.
func (c *Customer) BuildStatement() (*Statement, error) {
	quotes, err := c.Quotes()
	if err != nil {
		return nil, err
	}
	totalCharge, err := c.TotalCharge()
	if err != nil {
		return nil, err
	}
	totalPoints, err := c.TotalPoints()
	if err != nil {
		return nil, err
	}

	lines := make([]Line, len(quotes))
	for i, q := range quotes {
		lines[i] = Line{
			Title:      c.rentals[i].Title(),
			Category:   q.Category,
			DaysRented: q.DaysRented,
			Charge:     q.Charge,
			Points:     q.Points,
		}
	}
	return &Statement{
		Customer:    c.name,
		Lines:       lines,
		TotalCharge: totalCharge,
		TotalPoints: totalPoints,
	}, nil
}

// Statement renders the plain text statement.
func (c *Customer) Statement() (string, error) {
	return c.StatementAs(FormatText)
}

// StatementAs renders the statement using the template registered for f.
func (c *Customer) StatementAs(f Format) (string, error) {
	t, err := LookupFormat(f)
	if err != nil {
		return "", err
	}
	st, err := c.BuildStatement()
	if err != nil {
		return "", err
	}
	return Render(t, st), nil
}

// =============================================================================
// TEMPLATE - The per-format capability
// =============================================================================

// Template supplies the literal text of each statement section.
// Implementations must be stateless.
type Template interface {
	Header(st *Statement) string
	Row(l Line) string
	Footer(st *Statement) string
}

// Render is the single traversal shared by all formats.
func Render(t Template, st *Statement) string {
	var b strings.Builder
	b.WriteString(t.Header(st))
	for _, l := range st.Lines {
		b.WriteString(t.Row(l))
	}
	b.WriteString(t.Footer(st))
	return b.String()
}

// FormatAmount prints d with at least one fractional digit.
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// =============================================================================
// TEXT
// =============================================================================

type TextTemplate struct{}

func (TextTemplate) Header(st *Statement) string {
	return "Rental Record for " + st.Customer + "\n"
}

func (TextTemplate) Row(l Line) string {
	return "\t" + l.Title + "\t" + FormatAmount(l.Charge) + "\n"
}

func (TextTemplate) Footer(st *Statement) string {
	return "Amount owed is " + FormatAmount(st.TotalCharge) + "\n" +
		"You earned " + strconv.Itoa(st.TotalPoints) + " frequent renter points"
}

// =============================================================================
// HTML
// =============================================================================

// HTMLTemplate escapes customer names and titles; the markup itself is fixed.
type HTMLTemplate struct{}

func (HTMLTemplate) Header(st *Statement) string {
	return "<H1>Rentals for <EM>" + html.EscapeString(st.Customer) + "</EM></H1><P>\n"
}

func (HTMLTemplate) Row(l Line) string {
	return html.EscapeString(l.Title) + ": " + FormatAmount(l.Charge) + "<BR>\n"
}

func (HTMLTemplate) Footer(st *Statement) string {
	return "<P>You owe <EM>" + FormatAmount(st.TotalCharge) + "</EM><P>\n" +
		"On this rental you earned <EM>" + strconv.Itoa(st.TotalPoints) +
		"</EM> frequent renter points<P>"
}
