package service

import "github.com/Chris91ss/Proper-Trench-Coats-App/model"

// InventoryAPI is what the transport layer sees of the inventory façade.
type InventoryAPI interface {
	AddItem(f ItemFields) (ItemDTO, error)
	RemoveItem(id int64) error
	UpdateItem(id int64, f ItemFields) error
	Undo() error
	Redo() error

	GetItem(id int64) (ItemDTO, error)
	ListItems() ([]ItemDTO, error)
	FilterBySize(size model.Size) ([]ItemDTO, error)
	CountByPriceThreshold(threshold float64) (below, atOrAbove int, err error)
}
