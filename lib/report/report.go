package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/catalog"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/xuri/excelize/v2"
)

const (
	MappingSheet = "mapping"
	TableSheet   = "table"
)

var Columns = []string{
	"old_id",
	"old_name",
	"old_description",
	"old_categories",
	"best_new_id",
	"best_new_name",
	"best_score",
	"topk_candidates",
	"mapping_status",
}

func bestScore(row mapper.Row) string {
	return strconv.FormatFloat(row.BestScore, 'f', 2, 64)
}

func record(row mapper.Row) []string {
	bestID, bestName := "", ""
	if row.Best != nil {
		bestID = row.Best.NewID
		bestName = row.Best.NewName
	}
	return []string{
		row.OldID,
		row.OldName,
		row.OldDescription,
		row.OldCategories.String(),
		bestID,
		bestName,
		bestScore(row),
		row.TopK,
		string(row.Status),
	}
}

// Write saves the decided rows to an .xlsx workbook or a ';' separated
// .csv file, chosen by the extension of path.
func Write(path string, rows []mapper.Row) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = record(row)
	}
	return writeRecords(path, MappingSheet, Columns, records, map[int]bool{6: true})
}

// WriteMapping saves the final old_id -> new_id table sorted by old id.
func WriteMapping(path string, table mapper.Table) error {
	oldIDs := make([]string, 0, len(table))
	for id := range table {
		oldIDs = append(oldIDs, id)
	}
	slices.Sort(oldIDs)

	records := make([][]string, len(oldIDs))
	for i, id := range oldIDs {
		records[i] = []string{id, table[id]}
	}
	return writeRecords(path, TableSheet, []string{"old_id", "new_id"}, records, nil)
}

func writeRecords(path, sheet string, headers []string, records [][]string, numeric map[int]bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXlsx(path, sheet, headers, records, numeric)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = WriteCSV(f, headers, records)
		if err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w: %s", catalog.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteCSV writes a BOM so that spreadsheet programs detect UTF-8.
func WriteCSV(w io.Writer, headers []string, records [][]string) error {
	_, err := io.WriteString(w, "\ufeff")
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	err = writer.Write(headers)
	if err != nil {
		return err
	}
	err = writer.WriteAll(records)
	if err != nil {
		return err
	}
	return writer.Error()
}

func writeXlsx(path, sheet string, headers []string, records [][]string, numeric map[int]bool) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName(f.GetSheetName(0), sheet)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	err = sw.SetRow("A1", header)
	if err != nil {
		return err
	}

	for i, rec := range records {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
			if numeric[j] {
				n, err := strconv.ParseFloat(v, 64)
				if err == nil {
					cells[j] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		err = sw.SetRow(cell, cells)
		if err != nil {
			return err
		}
	}

	err = sw.Flush()
	if err != nil {
		return err
	}
	return f.SaveAs(path)
}
