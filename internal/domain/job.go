package domain

import (
	"context"
)

// Job is created by the job-posting feature. Company holds the display name;
// CompanyID is optional and may be unset for legacy postings.
type Job struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	CompanyID *int64 `json:"company_id"`
}

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*Job, error)
}
