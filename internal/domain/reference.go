package domain

// Reference data consumed by the dashboard's forms. These come from the
// upstream and are read-mostly, so they are served through the response
// cache.

type Stakeholder struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
	DistrictID   string `json:"district_id,omitempty"`
	StaffType    string `json:"staff_type,omitempty"`
}

type Coordinator struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	DistrictID string `json:"district_id,omitempty"`
}

type District struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
