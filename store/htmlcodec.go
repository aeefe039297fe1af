package store

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
)

var htmlTmpl = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Trench coats</title>
<style>
table { border-collapse: collapse; }
th, td { border: 1px solid #444; padding: 4px 10px; }
th { background: #eee; }
</style>
</head>
<body>
<table>
<tr><th>ID</th><th>Size</th><th>Color</th><th>Price</th><th>Quantity</th><th>Photograph</th></tr>
{{range .}}<tr><td>{{.ID}}</td><td>{{.Size}}</td><td>{{.Color}}</td><td>{{printf "%g" .Price}}</td><td>{{.Quantity}}</td><td>{{.Photograph}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// htmlCodec renders the dataset as a minimal styled table, one <tr> per
// item after the header row, and parses it back by walking the DOM.
type htmlCodec struct{}

func (htmlCodec) encode(w io.Writer, items []model.Item) error {
	return htmlTmpl.Execute(w, items)
}

func (htmlCodec) decode(r io.Reader) ([]model.Item, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var items []model.Item
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.Data == "tr" {
			fields := cellTexts(n)
			if len(fields) == 0 {
				return nil // header row holds <th>, not <td>
			}
			if len(fields) != 6 {
				return fmt.Errorf("table row has %d cells, want 6", len(fields))
			}
			it, err := itemFromStrings(fields)
			if err != nil {
				return err
			}
			items = append(items, it)
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return items, nil
}

// cellTexts returns the verbatim text content of each <td> under a row.
// The template writes values flush against the td tags, so any whitespace
// seen here belongs to the stored field.
func cellTexts(tr *html.Node) []string {
	var out []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			out = append(out, nodeText(c))
		}
	}
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else {
			b.WriteString(nodeText(c))
		}
	}
	return b.String()
}
