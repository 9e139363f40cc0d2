package domain

// Scheme is a government welfare program returned by the recommendation
// pipeline. Field names match the wire shape the provider is instructed to
// emit and the frontend renders.
type Scheme struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Eligibility string   `json:"eligibility"`
	Documents   []string `json:"documents"`
	ApplyLink   string   `json:"apply_link"`
}

// SchemeSearchResult is the payload of a scheme search. Schemes is never nil
// so the frontend always receives a renderable list.
type SchemeSearchResult struct {
	Message string   `json:"message"`
	Schemes []Scheme `json:"schemes"`
}
