// Package repository holds the ledger's store key layout and the typed
// helpers the domain repositories use to read and write it.
package repository

// Store keys. These names are persisted and must not change.
const (
	KeyProject       = "CLO_PRO"
	KeyProjectCount  = "PRO_COUNT"
	KeyResourceCount = "RES_COUNT"
	KeyResources     = "RESOURCES"
)
