package domain

import "context"

type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CompanyRepository interface {
	// GetByName returns the first company whose name matches exactly
	GetByName(ctx context.Context, name string) (*Company, error)
}
