package project

// NotFoundLabel fills the text fields of the sentinel project.
const NotFoundLabel = "Not Found"

// Project is the single marketplace project resources are listed under
type Project struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TotalResources uint64 `json:"total_resources"`
	Active         bool   `json:"active"`
}

// NotFound returns the sentinel project reported when none is stored.
func NotFound() Project {
	return Project{
		ID:          0,
		Title:       NotFoundLabel,
		Description: NotFoundLabel,
		Active:      false,
	}
}
