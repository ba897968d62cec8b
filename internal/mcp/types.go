package mcp

type CreateProjectParams struct {
	Title       string `json:"title" jsonschema:"project title"`
	Description string `json:"description" jsonschema:"project description"`
}

type CloseProjectParams struct{}

type ViewProjectParams struct{}

type ListResourceParams struct {
	Owner        string `json:"owner" jsonschema:"identifier of the lister"`
	ResourceType string `json:"resource_type" jsonschema:"free-text category such as CPU, RAM or Storage"`
	PricePerHour uint64 `json:"price_per_hour" jsonschema:"unit price per hour"`
}

type RentResourceParams struct {
	Renter     string `json:"renter" jsonschema:"identifier of the renter"`
	ResourceID uint64 `json:"resource_id" jsonschema:"id returned by list_resource"`
	Hours      uint64 `json:"hours" jsonschema:"rental duration in hours"`
}

type ReleaseResourceParams struct {
	ResourceID uint64 `json:"resource_id" jsonschema:"id of the resource to make available again"`
}

type ViewResourceParams struct {
	ResourceID uint64 `json:"resource_id" jsonschema:"id of the resource to view"`
}

type CreateProjectResult struct {
	ProjectID uint64 `json:"project_id" jsonschema:"id of the new project"`
}

type CloseProjectResult struct {
	Status string `json:"status" jsonschema:"always closed"`
}

type ListResourceResult struct {
	ResourceID uint64 `json:"resource_id" jsonschema:"id of the new resource"`
}

type RentResourceResult struct {
	TotalCost uint64 `json:"total_cost" jsonschema:"price_per_hour multiplied by hours"`
}

type ReleaseResourceResult struct {
	ResourceID uint64 `json:"resource_id" jsonschema:"id of the released resource"`
	Status     string `json:"status" jsonschema:"always available"`
}
