package project

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

func (r *kvRepository) Load() (Project, bool, error) {
	var proj Project
	ok, err := repository.GetJSON(r.tx, repository.KeyProject, &proj)
	if err != nil || !ok {
		return Project{}, false, err
	}
	return proj, true, nil
}

func (r *kvRepository) Save(proj Project) error {
	return repository.PutJSON(r.tx, repository.KeyProject, proj)
}

func (r *kvRepository) NextID() (uint64, error) {
	return repository.NextSequence(r.tx, repository.KeyProjectCount)
}

// Current returns the stored project or the sentinel when the slot is empty.
func Current(repo Repository) (Project, error) {
	proj, ok, err := repo.Load()
	if err != nil {
		return Project{}, err
	}
	if !ok {
		return NotFound(), nil
	}
	return proj, nil
}
