package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"brb/internal/dataset"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	excelMaxRows    = 1048576
	defaultSheet    = "Sheet1"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// XLSXEncoder writes a single-sheet workbook with a bold header row.
type XLSXEncoder struct {
	SheetName string
}

func (e XLSXEncoder) Encode(w io.Writer, ds *dataset.Dataset) error {
	if ds.Len()+1 > excelMaxRows {
		return fmt.Errorf("xlsx row limit exceeded: %d rows", ds.Len())
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	sheet := sheetName(e.SheetName)
	if current := file.GetSheetName(0); current != sheet {
		if err := file.SetSheetName(current, sheet); err != nil {
			return err
		}
	}

	stream, err := file.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	headerID, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := ds.Header()
	cells := make([]interface{}, len(header))
	for i, label := range header {
		cells[i] = excelize.Cell{StyleID: headerID, Value: label}
	}
	if err := stream.SetRow("A1", cells); err != nil {
		return err
	}

	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		values := make([]interface{}, len(row))
		for c, v := range row {
			if math.IsNaN(v) {
				values[c] = nil
				continue
			}
			values[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := stream.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := stream.Flush(); err != nil {
		return err
	}
	_, err = file.WriteTo(w)
	return err
}

func sheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		return defaultSheet
	}
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return name
}
