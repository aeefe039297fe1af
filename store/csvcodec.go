package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

var csvHeader = []string{"id", "size", "color", "price", "quantity", "photograph"}

// csvCodec writes a header row plus one comma/quote-escaped row per item.
type csvCodec struct{}

func (csvCodec) encode(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(itemToStrings(it)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (csvCodec) decode(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	var items []model.Item
	for _, rec := range records[1:] { // skip header
		it, err := itemFromStrings(rec)
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", rec, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func itemToStrings(it model.Item) []string {
	return []string{
		strconv.FormatInt(it.ID, 10),
		string(it.Size),
		it.Color,
		strconv.FormatFloat(it.Price, 'f', -1, 64),
		strconv.Itoa(it.Quantity),
		it.Photograph,
	}
}
