package company

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store keeps the single settings row with id 1, created by the first migration.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.DB.QueryRow(ctx, `
    SELECT name, nip, address, logo_url, is_premium, enable_sales_bonuses, updated_at
    FROM company_settings
    WHERE id = 1
  `).Scan(&out.Name, &out.NIP, &out.Address, &out.LogoURL, &out.IsPremium, &out.EnableSalesBonuses, &out.UpdatedAt)
	return out, err
}

func (s *Store) UpdateDetails(ctx context.Context, in DetailsInput) (Settings, error) {
	_, err := s.DB.Exec(ctx, `
    UPDATE company_settings
    SET name = $1, nip = $2, address = $3, logo_url = $4, enable_sales_bonuses = $5, updated_at = now()
    WHERE id = 1
  `, in.Name, in.NIP, in.Address, in.LogoURL, in.EnableSalesBonuses)
	if err != nil {
		return Settings{}, err
	}
	return s.Get(ctx)
}

func (s *Store) SetPremium(ctx context.Context, premium bool) (Settings, error) {
	if _, err := s.DB.Exec(ctx, "UPDATE company_settings SET is_premium = $1, updated_at = now() WHERE id = 1", premium); err != nil {
		return Settings{}, err
	}
	return s.Get(ctx)
}
