package store

import "github.com/Chris91ss/Proper-Trench-Coats-App/model"

// Store is the CRUD contract every storage backend satisfies. Every
// mutating call is durable before it returns; a crash right after a
// successful call must not lose the write.
type Store interface {
	// Create persists item, assigning the next free ID when item.ID is
	// zero. Returns ErrDuplicateID when an explicit ID collides.
	Create(item model.Item) (model.Item, error)

	// Read returns the item with the given id, or ErrNotFound.
	Read(id int64) (model.Item, error)

	// Update replaces the stored item under id. Returns ErrNotFound.
	Update(id int64, item model.Item) error

	// Delete removes the item under id. Returns ErrNotFound.
	Delete(id int64) error

	// List returns a snapshot of the dataset: ID order for every
	// backend, which for the file backends coincides with insertion
	// order as IDs are assigned monotonically.
	List() ([]model.Item, error)

	Close() error
}
