package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

// Postgres persists labels as JSONB documents in a single table:
//
//	CREATE TABLE labels (
//	    label_id   TEXT PRIMARY KEY,
//	    market     TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    document   JSONB NOT NULL
//	);
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres creates a Postgres-backed Gateway
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Put(ctx context.Context, label *domain.Label) error {
	doc, err := json.Marshal(label)
	if err != nil {
		return errors.StoreError(err)
	}

	query := `
		INSERT INTO labels (label_id, market, created_at, document)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (label_id) DO UPDATE
		SET market = EXCLUDED.market, created_at = EXCLUDED.created_at, document = EXCLUDED.document`

	_, err = p.db.ExecContext(ctx, query, label.LabelID, string(label.Market), label.CreatedAt, doc)
	if err != nil {
		return errors.StoreError(err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, labelID string) (*domain.Label, error) {
	var doc []byte
	err := p.db.QueryRowxContext(ctx,
		`SELECT document FROM labels WHERE label_id = $1`, labelID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("label")
	}
	if err != nil {
		return nil, errors.StoreError(err)
	}

	var label domain.Label
	if err := json.Unmarshal(doc, &label); err != nil {
		return nil, errors.StoreError(err)
	}
	return &label, nil
}

func (p *Postgres) List(ctx context.Context) ([]*domain.Label, error) {
	rows, err := p.db.QueryxContext(ctx,
		`SELECT document FROM labels ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.StoreError(err)
	}
	defer rows.Close()

	labels := make([]*domain.Label, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, errors.StoreError(err)
		}

		var label domain.Label
		if err := json.Unmarshal(doc, &label); err != nil {
			return nil, errors.StoreError(err)
		}
		labels = append(labels, &label)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreError(err)
	}

	return labels, nil
}

// Health reports the store status by pinging the database
func (p *Postgres) Health(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "up",
		"backend": "postgres",
	}

	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.db.PingContext(ctx); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}

	return status
}

func (p *Postgres) Delete(ctx context.Context, labelID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM labels WHERE label_id = $1`, labelID)
	if err != nil {
		return errors.StoreError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.StoreError(err)
	}
	if affected == 0 {
		return errors.NotFound("label")
	}
	return nil
}
