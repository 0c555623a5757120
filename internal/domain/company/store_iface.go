package company

import "context"

type StoreAPI interface {
	Get(ctx context.Context) (Settings, error)
	UpdateDetails(ctx context.Context, in DetailsInput) (Settings, error)
	SetPremium(ctx context.Context, premium bool) (Settings, error)
}
