package project

// Repository provides access to the project slot within one store transaction.
type Repository interface {
	Load() (Project, bool, error)
	Save(proj Project) error
	NextID() (uint64, error)
}
