package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLStore keeps the dataset in a single trenchcoats table, one row per
// item, ordered by primary key. It works against any database/sql driver
// that understands ? or $N placeholders (postgres and mysql are wired up).
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore opens the database, verifies the connection and creates the
// trenchcoats table if absent. The driver must already be registered.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// NewSQLStoreFromDB wraps an existing connection without pinging or
// creating the schema. Used by tests.
func NewSQLStoreFromDB(driver string, db *sql.DB) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(item model.Item) (model.Item, error) {
	if item.ID == 0 {
		err := s.db.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM trenchcoats`).Scan(&item.ID)
		if err != nil {
			return model.Item{}, fmt.Errorf("next id: %w", err)
		}
	} else {
		var exists bool
		err := s.db.QueryRow(s.rebind(`SELECT EXISTS(SELECT 1 FROM trenchcoats WHERE id = ?)`), item.ID).Scan(&exists)
		if err != nil {
			return model.Item{}, fmt.Errorf("check id: %w", err)
		}
		if exists {
			return model.Item{}, ErrDuplicateID
		}
	}

	_, err := s.db.Exec(
		s.rebind(`INSERT INTO trenchcoats (id, size, color, price, quantity, photograph) VALUES (?, ?, ?, ?, ?, ?)`),
		item.ID, string(item.Size), item.Color, item.Price, item.Quantity, item.Photograph,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

func (s *SQLStore) Read(id int64) (model.Item, error) {
	var it model.Item
	err := s.db.QueryRow(
		s.rebind(`SELECT id, size, color, price, quantity, photograph FROM trenchcoats WHERE id = ?`), id,
	).Scan(&it.ID, &it.Size, &it.Color, &it.Price, &it.Quantity, &it.Photograph)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("query item: %w", err)
	}
	return it, nil
}

func (s *SQLStore) Update(id int64, item model.Item) error {
	// Existence is checked up front rather than via RowsAffected: mysql
	// reports zero affected rows when the new values equal the old ones.
	if _, err := s.Read(id); err != nil {
		return err
	}
	_, err := s.db.Exec(
		s.rebind(`UPDATE trenchcoats SET size = ?, color = ?, price = ?, quantity = ?, photograph = ? WHERE id = ?`),
		string(item.Size), item.Color, item.Price, item.Quantity, item.Photograph, id,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(id int64) error {
	res, err := s.db.Exec(s.rebind(`DELETE FROM trenchcoats WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) List() ([]model.Item, error) {
	rows, err := s.db.Query(`SELECT id, size, color, price, quantity, photograph FROM trenchcoats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Size, &it.Color, &it.Price, &it.Quantity, &it.Photograph); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error { return s.db.Close() }

// DB exposes the underlying connection so basket exports can share it.
func (s *SQLStore) DB() *sql.DB { return s.db }

// rebind rewrites ? placeholders to $1..$N for postgres; mysql takes the
// query as written.
func (s *SQLStore) rebind(query string) string {
	return rebind(s.driver, query)
}

func rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
