// Package repository persists the nickname lookup table as a CSV artifact.
package repository

import "context"

// Store provides read/write access to the persisted lookup table.
type Store interface {
	// Load reads the artifact and returns its raw_name -> name_group
	// pairs. Returns ErrNotFound when the artifact does not exist.
	Load(ctx context.Context) (map[string]string, error)

	// Save writes the full set of pairs, replacing any previous
	// artifact. The write is atomic: readers never observe a partial
	// file.
	Save(ctx context.Context, groups map[string]string) error
}
