package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

// textCodec reads and writes one record per line:
//
//	id|size|color|price|quantity|photograph
//
// The pipe delimiter is rejected in free-text fields by the service-level
// validation, so it never collides with a field value.
type textCodec struct{}

func (textCodec) encode(w io.Writer, items []model.Item) error {
	bw := bufio.NewWriter(w)
	for _, it := range items {
		_, err := fmt.Fprintf(bw, "%d|%s|%s|%s|%d|%s\n",
			it.ID, it.Size, it.Color,
			strconv.FormatFloat(it.Price, 'f', -1, 64),
			it.Quantity, it.Photograph)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (textCodec) decode(r io.Reader) ([]model.Item, error) {
	var items []model.Item
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		// Field content is kept verbatim, whitespace included; only the
		// line break itself is a delimiter.
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 6 {
			return nil, fmt.Errorf("malformed record %q", line)
		}
		it, err := itemFromStrings(fields)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", line, err)
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// itemFromStrings parses the common field order shared by all file codecs:
// id, size, color, price, quantity, photograph.
func itemFromStrings(fields []string) (model.Item, error) {
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return model.Item{}, fmt.Errorf("id: %w", err)
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return model.Item{}, fmt.Errorf("price: %w", err)
	}
	qty, err := strconv.Atoi(fields[4])
	if err != nil {
		return model.Item{}, fmt.Errorf("quantity: %w", err)
	}
	return model.Item{
		ID:         id,
		Size:       model.Size(fields[1]),
		Color:      fields[2],
		Price:      price,
		Quantity:   qty,
		Photograph: fields[5],
	}, nil
}
