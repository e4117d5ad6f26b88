// Package ingest reads uploaded spreadsheets into statement tables.
package ingest

import (
	"io"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/finlens/finlens/internal/statement"
)

// Ingest failures are boundary errors: surfaced as blocking messages,
// analysis is never attempted on top of them.
var (
	ErrNoSheet     = eris.New("ingest: workbook has no sheets")
	ErrEmpty       = eris.New("ingest: sheet has no data rows")
	ErrColumnCount = eris.New("ingest: expected exactly 3 columns (line item, prior value, current value)")
)

// ReadStatement parses an XLSX workbook from r. The first sheet must hold
// exactly three columns in fixed order: line-item name, prior-year value,
// current-year value. Anything wider fails loudly rather than silently
// relabeling columns by position. A leading header row is skipped.
func ReadStatement(r io.Reader) (*statement.Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read upload")
	}

	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open workbook")
	}

	return fromFile(f)
}

// ReadStatementFile parses an XLSX workbook from disk. Same contract as
// ReadStatement.
func ReadStatementFile(path string) (*statement.Statement, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open workbook %s", path)
	}

	return fromFile(f)
}

func fromFile(f *xlsx.File) (*statement.Statement, error) {
	if len(f.Sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheet := f.Sheets[0]

	st := &statement.Statement{}
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)

		if isEmptyRow(cells) {
			continue
		}
		if err := checkWidth(cells); err != nil {
			return nil, eris.Wrapf(err, "row %d", i+1)
		}
		if len(st.Rows) == 0 && isHeaderRow(cells) {
			continue
		}

		st.Rows = append(st.Rows, statement.Row{
			Name:    strings.TrimSpace(cellAt(cells, 0)),
			Prior:   statement.ParseValue(cellAt(cells, 1)),
			Current: statement.ParseValue(cellAt(cells, 2)),
		})
	}

	if len(st.Rows) == 0 {
		return nil, ErrEmpty
	}

	return st, nil
}

// checkWidth rejects rows with populated cells past the third column.
func checkWidth(cells []string) error {
	for i := 3; i < len(cells); i++ {
		if strings.TrimSpace(cells[i]) != "" {
			return ErrColumnCount
		}
	}
	return nil
}

// isHeaderRow reports whether the first populated row looks like column
// labels: both value cells present and non-numeric.
func isHeaderRow(cells []string) bool {
	prior := strings.TrimSpace(cellAt(cells, 1))
	current := strings.TrimSpace(cellAt(cells, 2))
	if prior == "" || current == "" {
		return false
	}
	return hasLetter(prior) && hasLetter(current)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
