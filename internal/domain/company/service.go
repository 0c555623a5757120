package company

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.store.Get(ctx)
}

func (s *Service) UpdateDetails(ctx context.Context, in DetailsInput) (Settings, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Settings{}, ErrInvalidName
	}
	nip, err := NormalizeNIP(in.NIP)
	if err != nil {
		return Settings{}, err
	}
	in.NIP = nip
	in.Address = strings.TrimSpace(in.Address)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	return s.store.UpdateDetails(ctx, in)
}

// UpgradeToPremium unlocks payslips and the payroll register. Upgrading an
// already premium company is a no-op.
func (s *Service) UpgradeToPremium(ctx context.Context) (Settings, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	if current.IsPremium {
		return current, nil
	}
	return s.store.SetPremium(ctx, true)
}
