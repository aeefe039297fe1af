package model

// Size is the garment size of a trench coat.
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// ValidSize reports whether s is one of the stocked garment sizes.
func ValidSize(s Size) bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// Item is one catalog entry. ID is unique within a backend's dataset;
// a zero ID means "not yet assigned".
type Item struct {
	ID         int64
	Size       Size
	Color      string
	Price      float64
	Quantity   int
	Photograph string
}
