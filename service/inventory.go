package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Chris91ss/Proper-Trench-Coats-App/command"
	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

// ErrInvalidInput marks validation failures. Nothing is written to the
// backend or the undo history when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// ItemFields is the caller-supplied part of an item; the ID is always
// assigned by the backend.
type ItemFields struct {
	Size       model.Size `json:"size"`
	Color      string     `json:"color"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	Photograph string     `json:"photograph"`
}

// Inventory is the business-logic façade over one backend: it validates
// input, builds commands and runs them through the undo/redo stack.
type Inventory struct {
	store store.Store
	stack *command.Stack
}

func NewInventory(s store.Store) *Inventory {
	return &Inventory{store: s, stack: command.NewStack(s)}
}

// AddItem validates fields and creates a new catalog item through an
// undoable command. The returned DTO carries the generated ID.
func (s *Inventory) AddItem(f ItemFields) (ItemDTO, error) {
	if err := validateFields(f); err != nil {
		return ItemDTO{}, err
	}
	cmd := &command.AddCommand{Item: model.Item{
		Size:       f.Size,
		Color:      f.Color,
		Price:      f.Price,
		Quantity:   f.Quantity,
		Photograph: f.Photograph,
	}}
	if err := s.stack.Execute(cmd); err != nil {
		return ItemDTO{}, err
	}
	return toItemDTO(cmd.Created()), nil
}

// RemoveItem deletes the item under id through an undoable command.
func (s *Inventory) RemoveItem(id int64) error {
	return s.stack.Execute(&command.RemoveCommand{ID: id})
}

// UpdateItem validates fields and replaces the item under id through an
// undoable command.
func (s *Inventory) UpdateItem(id int64, f ItemFields) error {
	if err := validateFields(f); err != nil {
		return err
	}
	return s.stack.Execute(&command.UpdateCommand{ID: id, Item: model.Item{
		Size:       f.Size,
		Color:      f.Color,
		Price:      f.Price,
		Quantity:   f.Quantity,
		Photograph: f.Photograph,
	}})
}

// Undo reverses the latest inventory edit; Redo replays the latest undo.
func (s *Inventory) Undo() error { return s.stack.Undo() }
func (s *Inventory) Redo() error { return s.stack.Redo() }

// GetItem returns one item by ID.
func (s *Inventory) GetItem(id int64) (ItemDTO, error) {
	it, err := s.store.Read(id)
	if err != nil {
		return ItemDTO{}, err
	}
	return toItemDTO(it), nil
}

// ListItems returns the full catalog snapshot.
func (s *Inventory) ListItems() ([]ItemDTO, error) {
	items, err := s.store.List()
	if err != nil {
		return nil, err
	}
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out, nil
}

// FilterBySize returns the items of the given size. A pure query: the
// undo history is not involved.
func (s *Inventory) FilterBySize(size model.Size) ([]ItemDTO, error) {
	items, err := s.store.List()
	if err != nil {
		return nil, err
	}
	out := []ItemDTO{}
	for _, it := range items {
		if it.Size == size {
			out = append(out, toItemDTO(it))
		}
	}
	return out, nil
}

// CountByPriceThreshold splits the catalog into items priced below the
// threshold and items priced at or above it.
func (s *Inventory) CountByPriceThreshold(threshold float64) (below, atOrAbove int, err error) {
	items, err := s.store.List()
	if err != nil {
		return 0, 0, err
	}
	for _, it := range items {
		if it.Price < threshold {
			below++
		} else {
			atOrAbove++
		}
	}
	return below, atOrAbove, nil
}

func validateFields(f ItemFields) error {
	if f.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if f.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrInvalidInput)
	}
	if !model.ValidSize(f.Size) {
		return fmt.Errorf("%w: unknown size %q", ErrInvalidInput, f.Size)
	}
	// The text backend delimits fields with | and records with newlines;
	// neither may appear inside a free-text value.
	if strings.ContainsRune(f.Color, '|') || strings.ContainsRune(f.Photograph, '|') {
		return fmt.Errorf("%w: fields may not contain '|'", ErrInvalidInput)
	}
	if strings.ContainsFunc(f.Color, unicode.IsControl) || strings.ContainsFunc(f.Photograph, unicode.IsControl) {
		return fmt.Errorf("%w: fields may not contain control characters", ErrInvalidInput)
	}
	return nil
}
