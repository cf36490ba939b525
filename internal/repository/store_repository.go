package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

const storeSchema = `CREATE TABLE IF NOT EXISTS planner_store (
	store_key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// StoreRepository persists planner documents as key/value rows. Queries are
// written with ? placeholders and rebound for the active driver.
type StoreRepository struct {
	db *sqlx.DB
}

// NewStoreRepository constructs the repository.
func NewStoreRepository(db *sqlx.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// EnsureSchema creates the store table when missing.
func (r *StoreRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, storeSchema); err != nil {
		return fmt.Errorf("ensure planner_store schema: %w", err)
	}
	return nil
}

// Get fetches a single entry by key. Missing keys return sql.ErrNoRows.
func (r *StoreRepository) Get(ctx context.Context, key string) (*models.StoreEntry, error) {
	query := r.db.Rebind(`SELECT store_key, value, updated_at FROM planner_store WHERE store_key = ?`)
	var entry models.StoreEntry
	if err := r.db.GetContext(ctx, &entry, query, key); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns every stored entry ordered by key.
func (r *StoreRepository) List(ctx context.Context) ([]models.StoreEntry, error) {
	const query = `SELECT store_key, value, updated_at FROM planner_store ORDER BY store_key ASC`
	var entries []models.StoreEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list store entries: %w", err)
	}
	return entries, nil
}

// Put inserts or replaces the entry for key.
func (r *StoreRepository) Put(ctx context.Context, key, value string, updatedAt time.Time) error {
	query := r.db.Rebind(`INSERT INTO planner_store (store_key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (store_key)
DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := r.db.ExecContext(ctx, query, key, value, updatedAt.UTC()); err != nil {
		return fmt.Errorf("put store entry %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an error.
func (r *StoreRepository) Delete(ctx context.Context, key string) error {
	query := r.db.Rebind(`DELETE FROM planner_store WHERE store_key = ?`)
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete store entry %s: %w", key, err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *StoreRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
