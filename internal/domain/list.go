package domain

// ListParams are the pass-through filters for the upstream request list.
// The upstream paginates by skip/limit rather than page numbers.
type ListParams struct {
	Skip     int    `json:"skip" query:"skip"`
	Limit    int    `json:"limit" query:"limit"`
	Status   string `json:"status,omitempty" query:"status"`
	Search   string `json:"search,omitempty" query:"search"`
	Category string `json:"category,omitempty" query:"category"`
}

func (p *ListParams) Validate() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// RequestList is a normalized page of requests plus the per-status counts
// the upstream includes for the dashboard's filter badges.
type RequestList struct {
	Items        []Request        `json:"items"`
	Total        int64            `json:"total"`
	Skip         int              `json:"skip"`
	Limit        int              `json:"limit"`
	StatusCounts map[string]int64 `json:"status_counts,omitempty"`
}
