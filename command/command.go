// Package command implements reversible inventory mutations and the
// undo/redo stack that sequences them. Each command captures the state it
// needs to exactly reverse itself against any store.Store.
package command

import (
	"errors"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

// Command is one reversible unit of inventory mutation.
type Command interface {
	// Apply runs the forward operation, capturing whatever snapshot the
	// inverse needs before mutating.
	Apply(s store.Store) error

	// Revert undoes a previously applied command. When the backend no
	// longer matches the state Apply left behind, it fails with
	// ErrIrreversibleState and mutates nothing.
	Revert(s store.Store) error

	// Reapply re-runs the forward operation after a Revert, from the
	// snapshot captured by Apply.
	Reapply(s store.Store) error
}

// AddCommand creates a new item. Item may carry a zero ID; the backend
// assigns one on Apply and the command remembers it for Revert.
type AddCommand struct {
	Item model.Item

	after model.Item // the item as created, generated ID included
}

func (c *AddCommand) Apply(s store.Store) error {
	created, err := s.Create(c.Item)
	if err != nil {
		return err
	}
	c.after = created
	return nil
}

func (c *AddCommand) Revert(s store.Store) error {
	current, err := s.Read(c.after.ID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrIrreversibleState
	}
	if err != nil {
		return err
	}
	if current != c.after {
		return ErrIrreversibleState
	}
	return s.Delete(c.after.ID)
}

func (c *AddCommand) Reapply(s store.Store) error {
	_, err := s.Create(c.after)
	return err
}

// Created returns the item as stored by Apply, generated ID included.
func (c *AddCommand) Created() model.Item { return c.after }

// RemoveCommand deletes an item by ID, remembering its last value so
// Revert can re-create it. The backend restores it to its original List
// position because IDs order every dataset.
type RemoveCommand struct {
	ID int64

	before model.Item
}

func (c *RemoveCommand) Apply(s store.Store) error {
	before, err := s.Read(c.ID)
	if err != nil {
		return err
	}
	if err := s.Delete(c.ID); err != nil {
		return err
	}
	c.before = before
	return nil
}

func (c *RemoveCommand) Revert(s store.Store) error {
	if _, err := s.Read(c.ID); err == nil {
		// Something re-occupied the ID after the delete.
		return ErrIrreversibleState
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	_, err := s.Create(c.before)
	return err
}

func (c *RemoveCommand) Reapply(s store.Store) error {
	return s.Delete(c.ID)
}

// UpdateCommand replaces the item under ID with Item, remembering the
// previous value.
type UpdateCommand struct {
	ID   int64
	Item model.Item

	before model.Item
	after  model.Item
}

func (c *UpdateCommand) Apply(s store.Store) error {
	before, err := s.Read(c.ID)
	if err != nil {
		return err
	}
	after := c.Item
	after.ID = c.ID
	if err := s.Update(c.ID, after); err != nil {
		return err
	}
	c.before = before
	c.after = after
	return nil
}

func (c *UpdateCommand) Revert(s store.Store) error {
	current, err := s.Read(c.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIrreversibleState
		}
		return err
	}
	if current != c.after {
		return ErrIrreversibleState
	}
	return s.Update(c.ID, c.before)
}

func (c *UpdateCommand) Reapply(s store.Store) error {
	return s.Update(c.ID, c.after)
}
