package model

// BasketEntry is one selected item in a basket. Item is a snapshot taken
// at add time; later catalog edits do not reach into the basket.
type BasketEntry struct {
	Item     Item
	Quantity int
}
