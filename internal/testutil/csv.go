// Package testutil builds export fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// Header is the column order of a SIL Log-In export.
var Header = []string{
	"Número da programação",
	"Situação programação",
	"Situação prazo programação",
	"Previsão início atendimento (BRA)",
	"CNPJ Transportadora",
	"Tipo de programação",
}

// Tax ids of the default catalog.
const (
	TaxMTZ = "15.245.792/0001-31"
	TaxFOR = "15.245.792/0004-84"
	TaxSUA = "15.245.792/0005-65"
	TaxSSZ = "15.245.792/0006-46"
	TaxCWB = "15.245.792/0003-01"
	TaxCXJ = "15.245.792/0007-27"
)

// Row is a single export line in Header order.
type Row struct {
	ID, Status, Deadline, Forecast, TaxID, Type string
}

func (r Row) fields() []string {
	return []string{r.ID, r.Status, r.Deadline, r.Forecast, r.TaxID, r.Type}
}

// CSV renders header and rows as a `;` delimited document.
func CSV(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ";"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, ";"))
		b.WriteString("\n")
	}
	return b.String()
}

// ExportCSV renders rows under the standard Header.
func ExportCSV(rows ...Row) string {
	raw := make([][]string, 0, len(rows))
	for _, r := range rows {
		raw = append(raw, r.fields())
	}
	return CSV(Header, raw)
}

// WriteFile writes content as UTF-8 into dir/name.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteLatin1File writes content encoded as ISO-8859-1 into dir/name.
func WriteLatin1File(t *testing.T, dir, name, content string) string {
	t.Helper()
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return WriteFile(t, dir, name, encoded)
}
