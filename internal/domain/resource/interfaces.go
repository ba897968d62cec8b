package resource

// Repository provides access to the resource map within one store transaction.
type Repository interface {
	LoadAll() (map[uint64]Resource, error)
	SaveAll(resources map[uint64]Resource) error
	NextID() (uint64, error)
}
