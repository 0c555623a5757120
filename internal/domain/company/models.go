package company

import "time"

type Settings struct {
	Name               string    `json:"companyName"`
	NIP                string    `json:"nip"`
	Address            string    `json:"address"`
	LogoURL            string    `json:"logoUrl"`
	IsPremium          bool      `json:"isPremium"`
	EnableSalesBonuses bool      `json:"enableSalesBonuses"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type DetailsInput struct {
	Name               string `json:"companyName" validate:"required,max=200"`
	NIP                string `json:"nip" validate:"max=20"`
	Address            string `json:"address" validate:"max=300"`
	LogoURL            string `json:"logoUrl" validate:"omitempty,url,max=500"`
	EnableSalesBonuses bool   `json:"enableSalesBonuses"`
}
