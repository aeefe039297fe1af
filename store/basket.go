package store

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

// BasketExporter writes a basket snapshot to a persistent medium. A failed
// export leaves the target and the in-memory basket untouched.
type BasketExporter interface {
	Export(entries []model.BasketEntry) error
}

var basketCSVHeader = []string{"id", "size", "color", "price", "quantity", "photograph"}

// CSVBasketExporter writes one row per entry; the quantity column is the
// basket quantity, not the catalog stock. The file round-trips through
// LoadBasketCSV.
type CSVBasketExporter struct {
	Path string
}

func (e CSVBasketExporter) Export(entries []model.BasketEntry) error {
	return writeFileAtomic(e.Path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(basketCSVHeader); err != nil {
			return err
		}
		for _, en := range entries {
			rec := []string{
				strconv.FormatInt(en.Item.ID, 10),
				string(en.Item.Size),
				en.Item.Color,
				strconv.FormatFloat(en.Item.Price, 'f', -1, 64),
				strconv.Itoa(en.Quantity),
				en.Item.Photograph,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// LoadBasketCSV re-parses a file written by CSVBasketExporter, preserving
// entry order. The catalog stock quantity is not part of the snapshot.
func LoadBasketCSV(path string) ([]model.BasketEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open basket file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse basket file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	var entries []model.BasketEntry
	for _, rec := range records[1:] {
		if len(rec) != 6 {
			return nil, fmt.Errorf("basket row has %d fields, want 6", len(rec))
		}
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("basket id: %w", err)
		}
		price, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("basket price: %w", err)
		}
		qty, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("basket quantity: %w", err)
		}
		entries = append(entries, model.BasketEntry{
			Item: model.Item{
				ID:         id,
				Size:       model.Size(rec[1]),
				Color:      rec[2],
				Price:      price,
				Photograph: rec[5],
			},
			Quantity: qty,
		})
	}
	return entries, nil
}

var basketHTMLTmpl = template.Must(template.New("basket").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Basket</title>
<style>
table { border-collapse: collapse; }
th, td { border: 1px solid #444; padding: 4px 10px; }
th { background: #eee; }
</style>
</head>
<body>
<table>
<tr><th>ID</th><th>Size</th><th>Color</th><th>Price</th><th>Quantity</th><th>Photograph</th></tr>
{{range .}}<tr><td>{{.Item.ID}}</td><td>{{.Item.Size}}</td><td>{{.Item.Color}}</td><td>{{printf "%g" .Item.Price}}</td><td>{{.Quantity}}</td><td>{{.Item.Photograph}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// HTMLBasketExporter renders the basket as a styled table document.
type HTMLBasketExporter struct {
	Path string
}

func (e HTMLBasketExporter) Export(entries []model.BasketEntry) error {
	return writeFileAtomic(e.Path, func(w io.Writer) error {
		return basketHTMLTmpl.Execute(w, entries)
	})
}

// SQLBasketExporter replaces the basket_entries table contents with the
// snapshot, inside one transaction so a failure leaves the prior snapshot.
type SQLBasketExporter struct {
	Driver string
	DB     *sql.DB
}

const basketSchemaSQL = `CREATE TABLE IF NOT EXISTS basket_entries (
    id         INTEGER,
    size       TEXT,
    color      TEXT,
    price      REAL,
    quantity   INTEGER,
    photograph TEXT
)`

func (e SQLBasketExporter) Export(entries []model.BasketEntry) error {
	if _, err := e.DB.Exec(basketSchemaSQL); err != nil {
		return fmt.Errorf("create basket schema: %w", err)
	}

	tx, err := e.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM basket_entries`); err != nil {
		return fmt.Errorf("clear basket table: %w", err)
	}
	insert := rebind(e.Driver, `INSERT INTO basket_entries (id, size, color, price, quantity, photograph) VALUES (?, ?, ?, ?, ?, ?)`)
	for _, en := range entries {
		_, err := tx.Exec(insert,
			en.Item.ID, string(en.Item.Size), en.Item.Color,
			en.Item.Price, en.Quantity, en.Item.Photograph)
		if err != nil {
			return fmt.Errorf("insert basket entry: %w", err)
		}
	}
	return tx.Commit()
}
