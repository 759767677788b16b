/*
errors.go - Centralized error types for the rental engine

PURPOSE:
  All error types in one place. Two families exist:
  1. Validation errors - bad input from a caller (days < 1, blank title)
  2. Configuration errors - a category or format the engine cannot price
     or render; these indicate corrupt data or an incomplete tariff table
  Store lookups add a third, not-found family.

USAGE:
  if errors.Is(err, rental.ErrInvalidDuration) {
      // reject the request
  }

  var catErr *rental.CategoryError
  if errors.As(err, &catErr) {
      log.Printf("unknown category %q", catErr.Category)
  }

SEE ALSO:
  - types.go: Constructors returning validation errors
  - pricing.go: Policy lookups returning configuration errors
*/
package rental

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDuration is returned when a rental is shorter than one day.
	ErrInvalidDuration = errors.New("rental duration must be at least one day")

	// ErrUnknownCategory is returned for a category outside the closed set.
	ErrUnknownCategory = errors.New("unknown price category")

	// ErrTariffMissing is returned when a policy has no tariff for a valid category.
	ErrTariffMissing = errors.New("no tariff configured for category")

	// ErrInvalidTariff is returned when a tariff table has negative or duplicate entries.
	ErrInvalidTariff = errors.New("invalid tariff")

	// ErrUnknownFormat is returned when no template is registered for a format.
	ErrUnknownFormat = errors.New("unknown statement format")

	// ErrEmptyTitle is returned when a movie is created without a title.
	ErrEmptyTitle = errors.New("movie title is required")

	// ErrInvalidMovie is returned when a rental references a zero-value movie.
	ErrInvalidMovie = errors.New("rental requires a movie created with NewMovie")

	// ErrMovieNotFound is returned by stores for an unknown title.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrCustomerNotFound is returned by stores for an unknown customer.
	ErrCustomerNotFound = errors.New("customer not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DurationError reports the rejected day count.
type DurationError struct {
	Days int
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid rental duration %d: must be at least one day", e.Days)
}

func (e *DurationError) Unwrap() error { return ErrInvalidDuration }

// CategoryError reports the category that could not be resolved.
type CategoryError struct {
	Category PriceCategory
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown price category %q", string(e.Category))
}

func (e *CategoryError) Unwrap() error { return ErrUnknownCategory }

// TariffError reports a valid category the policy has no tariff for.
type TariffError struct {
	Category PriceCategory
}

func (e *TariffError) Error() string {
	return fmt.Sprintf("no tariff configured for category %q", string(e.Category))
}

func (e *TariffError) Unwrap() error { return ErrTariffMissing }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is due to invalid caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidMovie)
}

// IsConfigError returns true if the engine cannot price or render with its
// current configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrTariffMissing) ||
		errors.Is(err, ErrInvalidTariff) ||
		errors.Is(err, ErrUnknownFormat)
}

// IsNotFound returns true if a store lookup found nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMovieNotFound) ||
		errors.Is(err, ErrCustomerNotFound)
}
