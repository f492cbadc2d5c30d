package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/agriprofit/agriprofit/pkg/models"
)

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, rec *models.PredictionRecord) error {
	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	query := `
		INSERT INTO predictions (user_id, request, crop, yield_kg, expense, revenue, profit, loss)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		rec.UserID, reqJSON, rec.Crop, rec.YieldKg,
		rec.Expense, rec.Revenue, rec.Profit, rec.Loss,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID, limit int) ([]*models.PredictionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, request, crop, yield_kg, expense, revenue, profit, loss, created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		var reqJSON []byte
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &reqJSON, &rec.Crop, &rec.YieldKg,
			&rec.Expense, &rec.Revenue, &rec.Profit, &rec.Loss, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		var req models.PredictionRequest
		if err := json.Unmarshal(reqJSON, &req); err != nil {
			return nil, fmt.Errorf("unmarshal request: %w", err)
		}
		rec.Request = &req

		records = append(records, &rec)
	}

	return records, rows.Err()
}
