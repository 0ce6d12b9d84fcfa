package provider

import (
	"context"

	"jobfinder-engine/internal/query"
)

// Listing is a raw provider record, decoded as-is. Field names follow the
// JSearch response; everything beyond these is ignored.
type Listing struct {
	Title          string  `json:"job_title"`
	Employer       string  `json:"employer_name"`
	City           string  `json:"job_city"`
	State          string  `json:"job_state"`
	Country        string  `json:"job_country"`
	IsRemote       bool    `json:"job_is_remote"`
	Description    string  `json:"job_description"`
	ApplyLink      string  `json:"job_apply_link"`
	EmploymentType string  `json:"job_employment_type"`
	PostedAt       string  `json:"job_posted_at_datetime_utc"`
	MinSalary      float64 `json:"job_min_salary"`
}

type Client interface {
	Search(ctx context.Context, q query.ProviderQuery, p query.Params) ([]Listing, error)
}
