package htmldoc

import (
	"fmt"

	"golang.org/x/net/html"
)

// KeyValTable is a two-column table of ordered key-value pairs, used for
// report parameters and summary statistics.
type KeyValTable struct {
	rows []keyVal
}

type keyVal struct {
	key  string
	val  string
	link string
}

// NewKeyValTable creates an empty KeyValTable.
func NewKeyValTable() *KeyValTable {
	return &KeyValTable{}
}

// Add appends a row. value is formatted with fmt.Sprint.
func (t *KeyValTable) Add(key string, value any) *KeyValTable {
	t.rows = append(t.rows, keyVal{key: key, val: fmt.Sprint(value)})
	return t
}

// AddLink appends a row whose value links to href.
func (t *KeyValTable) AddLink(key, text, href string) *KeyValTable {
	t.rows = append(t.rows, keyVal{key: key, val: text, link: href})
	return t
}

// Len returns the number of rows.
func (t *KeyValTable) Len() int { return len(t.rows) }

// Table builds a fresh <table> node for the current rows.
func (t *KeyValTable) Table() *html.Node {
	table := Table(0, 2)
	for _, row := range t.rows {
		tr := TR()
		tr.AppendChild(TD(row.key, "", ""))
		tr.AppendChild(TD(row.val, "", row.link))
		table.AppendChild(tr)
	}
	return table
}
