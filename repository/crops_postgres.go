package repository

import (
	"context"
	"errors"
	"fmt"

	"agrimarket/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cropColumns = `id, farmer_id, farmer_name, state, district, taluk, name, image_url, price, description, created_at, updated_at`

// PostgresCropStore keeps crops in the crops table.
type PostgresCropStore struct {
	db *pgxpool.Pool
}

func NewPostgresCropStore(db *pgxpool.Pool) *PostgresCropStore {
	return &PostgresCropStore{db: db}
}

func scanCrop(row pgx.Row) (models.Crop, error) {
	var c models.Crop
	err := row.Scan(
		&c.ID, &c.FarmerID, &c.FarmerName,
		&c.State, &c.District, &c.Taluk,
		&c.Name, &c.ImageURL, &c.Price, &c.Description,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (s *PostgresCropStore) list(ctx context.Context, query string, args ...any) ([]models.Crop, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	crops := []models.Crop{}
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crop row: %w", err)
		}
		crops = append(crops, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crops: %w", err)
	}
	return crops, nil
}

func (s *PostgresCropStore) All(ctx context.Context) ([]models.Crop, error) {
	return s.list(ctx, `SELECT `+cropColumns+` FROM crops ORDER BY created_at, id`)
}

func (s *PostgresCropStore) ByFarmer(ctx context.Context, farmerID string) ([]models.Crop, error) {
	return s.list(ctx, `SELECT `+cropColumns+` FROM crops WHERE farmer_id = $1 ORDER BY created_at, id`, farmerID)
}

func (s *PostgresCropStore) ByState(ctx context.Context, state string) ([]models.Crop, error) {
	return s.list(ctx, `SELECT `+cropColumns+` FROM crops WHERE LOWER(state) = LOWER($1) ORDER BY created_at, id`, state)
}

func (s *PostgresCropStore) ByID(ctx context.Context, id string) (models.Crop, error) {
	c, err := scanCrop(s.db.QueryRow(ctx, `SELECT `+cropColumns+` FROM crops WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Crop{}, ErrNotFound
	}
	if err != nil {
		return models.Crop{}, fmt.Errorf("failed to fetch crop %s: %w", id, err)
	}
	return c, nil
}

func (s *PostgresCropStore) Save(ctx context.Context, crop models.Crop) (models.Crop, error) {
	if crop.ID == "" {
		crop.ID = uuid.NewString()
	}

	query := `
        INSERT INTO crops (id, farmer_id, farmer_name, state, district, taluk, name, image_url, price, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            farmer_id = EXCLUDED.farmer_id,
            farmer_name = EXCLUDED.farmer_name,
            state = EXCLUDED.state,
            district = EXCLUDED.district,
            taluk = EXCLUDED.taluk,
            name = EXCLUDED.name,
            image_url = EXCLUDED.image_url,
            price = EXCLUDED.price,
            description = EXCLUDED.description,
            updated_at = NOW()
        RETURNING ` + cropColumns

	saved, err := scanCrop(s.db.QueryRow(ctx, query,
		crop.ID, crop.FarmerID, crop.FarmerName,
		crop.State, crop.District, crop.Taluk,
		crop.Name, crop.ImageURL, crop.Price, crop.Description,
	))
	if err != nil {
		return models.Crop{}, fmt.Errorf("failed to save crop %s: %w", crop.ID, err)
	}
	return saved, nil
}

func (s *PostgresCropStore) Delete(ctx context.Context, id string) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete crop %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
