package domain

// JobListing is an enriched provider record. Listings are never mutated
// after enrichment within a session.
type JobListing struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	ApplyLink   string   `json:"applyLink"`
	EmployType  string   `json:"employmentType,omitempty"`
	PostedAt    string   `json:"postedAt,omitempty"`
	IsRemote    bool     `json:"isRemote"`
	Tags        []string `json:"tags"`
	QueryFlag   string   `json:"queryFlag"`
}

// ResultSet preserves provider order; the provider does the ranking.
type ResultSet []JobListing
