/*
Package sqlite provides a SQLite-backed implementation of rental.Store.

PURPOSE:
  Keeps the movie catalog, customers and their rental history between
  runs of the statement tool. The pricing engine never touches the
  database; it only sees Customers rebuilt through rental.LoadCustomer.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE or DELETE statements on the rentals table (Reset aside)
  - seq (AUTOINCREMENT) records insertion order; Rentals() orders by it
  - Each rental row copies the movie category at rental time

KEY TABLES:
  movies:    title -> category
  customers: registered customer names
  rentals:   customer, movie, category snapshot, days rented

MIGRATION:
  Schema lives in migrations/*.sql, embedded in the binary and applied on
  New() with golang-migrate. Re-opening an up-to-date database is a no-op.

CONCURRENCY:
  The store pins the pool to one connection, which also keeps ":memory:"
  databases alive for the life of the Store. It is meant for a single
  process at a time.

USAGE:
  store, err := sqlite.New("./rentals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  c, err := rental.LoadCustomer(ctx, store, "Curly")

SEE ALSO:
  - rental/store.go: Interface definition
  - rental/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/movie-rentals/rental"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements rental.Store using SQLite.
type Store struct {
	db *sqlx.DB
}

var _ rental.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and applies migrations.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	// m.Close would close s.db as well; the source needs no cleanup.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// =============================================================================
// ROWS
// =============================================================================

type movieRow struct {
	Title     string `db:"title"`
	Category  string `db:"category"`
	CreatedAt string `db:"created_at"`
}

type rentalRow struct {
	ID           string `db:"id"`
	CustomerName string `db:"customer_name"`
	MovieTitle   string `db:"movie_title"`
	Category     string `db:"category"`
	DaysRented   int    `db:"days_rented"`
	CreatedAt    string `db:"created_at"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// =============================================================================
// MOVIES
// =============================================================================

// SaveMovie inserts a movie or updates its category.
func (s *Store) SaveMovie(ctx context.Context, m rental.Movie) error {
	if m.Title() == "" {
		return rental.ErrEmptyTitle
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO movies (title, category, created_at)
		VALUES (:title, :category, :created_at)
		ON CONFLICT(title) DO UPDATE SET category = excluded.category`,
		movieRow{Title: m.Title(), Category: string(m.Category()), CreatedAt: now()})
	if err != nil {
		return fmt.Errorf("save movie %q: %w", m.Title(), err)
	}
	return nil
}

// Movie returns the catalog entry for title.
func (s *Store) Movie(ctx context.Context, title string) (rental.Movie, error) {
	var row movieRow
	err := s.db.GetContext(ctx, &row, `SELECT title, category, created_at FROM movies WHERE title = ?`, title)
	if errors.Is(err, sql.ErrNoRows) {
		return rental.Movie{}, rental.ErrMovieNotFound
	}
	if err != nil {
		return rental.Movie{}, fmt.Errorf("load movie %q: %w", title, err)
	}
	return rental.NewMovie(row.Title, rental.PriceCategory(row.Category))
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// SaveCustomer registers name. Existing customers are left untouched.
func (s *Store) SaveCustomer(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO customers (name, created_at) VALUES (?, ?)`, name, now())
	if err != nil {
		return fmt.Errorf("save customer %q: %w", name, err)
	}
	return nil
}

// Customers returns every customer name in order.
func (s *Store) Customers(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.SelectContext(ctx, &names, `SELECT name FROM customers ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return names, nil
}

func customerExists(ctx context.Context, q sqlx.QueryerContext, name string) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, `SELECT COUNT(*) FROM customers WHERE name = ?`, name); err != nil {
		return false, err
	}
	return n > 0, nil
}

// =============================================================================
// RENTALS (append-only)
// =============================================================================

// AppendRental records r at the end of the customer's history. The movie is
// added to the catalog if it is not there yet.
func (s *Store) AppendRental(ctx context.Context, customer string, r rental.Rental) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ok, err := customerExists(ctx, tx, customer)
	if err != nil {
		return fmt.Errorf("lookup customer %q: %w", customer, err)
	}
	if !ok {
		return rental.ErrCustomerNotFound
	}

	ts := now()
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO movies (title, category, created_at) VALUES (?, ?, ?)`,
		r.Title(), string(r.Category()), ts); err != nil {
		return fmt.Errorf("register movie %q: %w", r.Title(), err)
	}

	row := rentalRow{
		ID:           uuid.NewString(),
		CustomerName: customer,
		MovieTitle:   r.Title(),
		Category:     string(r.Category()),
		DaysRented:   r.DaysRented(),
		CreatedAt:    ts,
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO rentals (id, customer_name, movie_title, category, days_rented, created_at)
		VALUES (:id, :customer_name, :movie_title, :category, :days_rented, :created_at)`, row); err != nil {
		return fmt.Errorf("append rental: %w", err)
	}
	return tx.Commit()
}

// Rentals returns the customer's history in insertion order. A row whose
// category or duration no longer validates is reported, never skipped.
func (s *Store) Rentals(ctx context.Context, customer string) ([]rental.Rental, error) {
	ok, err := customerExists(ctx, s.db, customer)
	if err != nil {
		return nil, fmt.Errorf("lookup customer %q: %w", customer, err)
	}
	if !ok {
		return nil, rental.ErrCustomerNotFound
	}

	var rows []rentalRow
	err = s.db.SelectContext(ctx, &rows, `
		SELECT id, customer_name, movie_title, category, days_rented, created_at
		FROM rentals WHERE customer_name = ? ORDER BY seq`, customer)
	if err != nil {
		return nil, fmt.Errorf("load rentals for %q: %w", customer, err)
	}

	out := make([]rental.Rental, 0, len(rows))
	for _, row := range rows {
		movie, err := rental.NewMovie(row.MovieTitle, rental.PriceCategory(row.Category))
		if err != nil {
			return nil, fmt.Errorf("rental %s: %w", row.ID, err)
		}
		r, err := rental.NewRental(movie, row.DaysRented)
		if err != nil {
			return nil, fmt.Errorf("rental %s: %w", row.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Reset deletes all data. For tests and demo reloads only.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"rentals", "customers", "movies"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}
