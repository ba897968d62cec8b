package resource

// NotFoundLabel fills the text fields of the sentinel resource.
const NotFoundLabel = "Not Found"

// Resource is a rentable listing. Available toggles between rent and release.
type Resource struct {
	ID           uint64 `json:"id"`
	Owner        string `json:"owner"`
	ResourceType string `json:"resource_type"`
	PricePerHour uint64 `json:"price_per_hour"`
	Available    bool   `json:"available"`
}

// NotFound returns the sentinel resource reported for unknown ids.
func NotFound() Resource {
	return Resource{
		Owner:        NotFoundLabel,
		ResourceType: NotFoundLabel,
	}
}
