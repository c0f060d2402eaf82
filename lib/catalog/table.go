package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported file type")

// Table is a spreadsheet read into memory, every cell as a string.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at row, col or "" when the row is too short.
func (t Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ReadTable reads the first sheet of an .xlsx/.xlsm workbook or a ';'
// separated .csv file. The first row is the header.
func ReadTable(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXlsx(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return Table{}, err
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads ';' separated records.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, err
	}
	return fromRecords(records), nil
}

func readXlsx(path string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("%s: workbook has no sheets", path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, err
	}
	return fromRecords(records), nil
}

func fromRecords(records [][]string) Table {
	if len(records) == 0 {
		return Table{}
	}
	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return Table{Headers: headers, Rows: records[1:]}
}
