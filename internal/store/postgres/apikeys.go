package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmgzone/notebookllm/internal/domain/apikey"
)

// The api_keys table belongs to the NotebookLLM app; this tool only writes
// rows the app already knows how to read. Expected shape:
//
//	CREATE TABLE api_keys (
//	    service_name    TEXT PRIMARY KEY,
//	    encrypted_value TEXT NOT NULL,
//	    description     TEXT,
//	    updated_at      TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
//	);

var ErrNotFound = errors.New("api key not found")

// UpsertAPIKey inserts or refreshes one row keyed by service_name. Same
// semantics as the statement the encrypt command prints: a conflict replaces
// the ciphertext and bumps updated_at but keeps the original description.
func (r *Repo) UpsertAPIKey(ctx context.Context, k *apikey.APIKey) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO api_keys (service_name, encrypted_value, description, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (service_name) DO UPDATE
		  SET encrypted_value = EXCLUDED.encrypted_value,
		      updated_at      = CURRENT_TIMESTAMP`,
		k.ServiceName, k.EncryptedValue, k.Description,
	)
	return err
}

// GetAPIKey loads one row, ciphertext included.
func (r *Repo) GetAPIKey(ctx context.Context, service string) (*apikey.APIKey, error) {
	row := r.db.QueryRow(ctx, `
		SELECT service_name, encrypted_value, COALESCE(description,''), updated_at
		FROM api_keys
		WHERE service_name=$1`, service)
	var k apikey.APIKey
	if err := row.Scan(&k.ServiceName, &k.EncryptedValue, &k.Description, &k.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, service)
		}
		return nil, err
	}
	return &k, nil
}

// ListAPIKeys returns identity and freshness only, never the ciphertext.
func (r *Repo) ListAPIKeys(ctx context.Context) ([]apikey.APIKey, error) {
	rows, err := r.db.Query(ctx, `
		SELECT service_name, COALESCE(description,''), updated_at
		  FROM api_keys
		 ORDER BY service_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []apikey.APIKey
	for rows.Next() {
		var k apikey.APIKey
		if err := rows.Scan(&k.ServiceName, &k.Description, &k.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// RotateAPIKeys re-seals every row inside one transaction. rekey swaps the
// key's EncryptedValue in place; any failure rolls the whole run back so the
// table never ends up split across two passphrases.
func (r *Repo) RotateAPIKeys(ctx context.Context, rekey func(*apikey.APIKey) error) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT service_name, encrypted_value, COALESCE(description,'')
		  FROM api_keys
		 ORDER BY service_name
		   FOR UPDATE`)
	if err != nil {
		return 0, err
	}

	// Collect first: a pgx transaction runs one statement at a time, so the
	// result set must be drained before the updates start.
	var keys []apikey.APIKey
	for rows.Next() {
		var k apikey.APIKey
		if err := rows.Scan(&k.ServiceName, &k.EncryptedValue, &k.Description); err != nil {
			rows.Close()
			return 0, err
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for i := range keys {
		if err := rekey(&keys[i]); err != nil {
			return 0, fmt.Errorf("rotate %s: %w", keys[i].ServiceName, err)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE api_keys
			   SET encrypted_value = $2, updated_at = CURRENT_TIMESTAMP
			 WHERE service_name=$1`,
			keys[i].ServiceName, keys[i].EncryptedValue,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(keys), nil
}
