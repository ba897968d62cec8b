package resource

import (
	"github.com/rpggio/rentledger/internal/repository"
	"github.com/rpggio/rentledger/internal/store"
)

type kvRepository struct {
	tx store.Tx
}

// NewRepository binds a Repository to tx.
func NewRepository(tx store.Tx) Repository {
	return &kvRepository{tx: tx}
}

// LoadAll returns the resource map, empty when nothing was ever listed.
func (r *kvRepository) LoadAll() (map[uint64]Resource, error) {
	resources := make(map[uint64]Resource)
	if _, err := repository.GetJSON(r.tx, repository.KeyResources, &resources); err != nil {
		return nil, err
	}
	if resources == nil {
		resources = make(map[uint64]Resource)
	}
	return resources, nil
}

func (r *kvRepository) SaveAll(resources map[uint64]Resource) error {
	return repository.PutJSON(r.tx, repository.KeyResources, resources)
}

func (r *kvRepository) NextID() (uint64, error) {
	return repository.NextSequence(r.tx, repository.KeyResourceCount)
}
