package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

// Basket holds one session's selected items in insertion order. Items are
// captured by value when added, so later catalog edits don't change a
// basket. Basket mutations are not undoable; only inventory edits are.
type Basket struct {
	sessionID string
	entries   []model.BasketEntry
}

func NewBasket() *Basket {
	return &Basket{sessionID: uuid.NewString()}
}

// SessionID identifies the owning session.
func (b *Basket) SessionID() string { return b.sessionID }

// Add appends item with the given quantity, merging into the existing
// entry when the item is already in the basket.
func (b *Basket) Add(item model.Item, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be >= 1", ErrInvalidInput)
	}
	for i := range b.entries {
		if b.entries[i].Item.ID == item.ID {
			b.entries[i].Quantity += qty
			return nil
		}
	}
	b.entries = append(b.entries, model.BasketEntry{Item: item, Quantity: qty})
	return nil
}

// Remove drops the entry for itemID entirely.
func (b *Basket) Remove(itemID int64) error {
	for i := range b.entries {
		if b.entries[i].Item.ID == itemID {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Clear empties the basket.
func (b *Basket) Clear() { b.entries = nil }

// Entries returns a snapshot of the basket in insertion order.
func (b *Basket) Entries() []BasketEntryDTO {
	out := make([]BasketEntryDTO, 0, len(b.entries))
	for _, en := range b.entries {
		out = append(out, toBasketEntryDTO(en))
	}
	return out
}

// Total is the basket value: Σ price × quantity.
func (b *Basket) Total() float64 {
	var total float64
	for _, en := range b.entries {
		total += en.Item.Price * float64(en.Quantity)
	}
	return total
}

// Persist writes the current snapshot through the given exporter. On
// failure the in-memory basket is untouched; the caller may retry.
func (b *Basket) Persist(exp store.BasketExporter) error {
	return exp.Export(append([]model.BasketEntry(nil), b.entries...))
}
