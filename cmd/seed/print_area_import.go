package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
)

// Column layout: product_id, variant_id, name, x, y, w, h.
const printAreaColumns = 7

type printAreaRow struct {
	Row       int
	ProductID uint
	VariantID *uint
	Name      string
	Input     model.PrintAreaInput
}

type rowFailure struct {
	Row int
	Err error
}

type importResult struct {
	Imported int
	Failures []rowFailure
}

func readPrintAreasFromXLSX(filePath string) ([]printAreaRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var out []printAreaRow
	skipped := 0

	// first row is the header
	for i, cells := range rows[1:] {
		rowNum := i + 2
		if len(cells) < printAreaColumns {
			skipped++
			continue
		}

		productID, err := strconv.ParseUint(strings.TrimSpace(cells[0]), 10, 64)
		if err != nil || productID == 0 {
			skipped++
			continue
		}

		var variantID *uint
		if v := strings.TrimSpace(cells[1]); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				skipped++
				continue
			}
			id := uint(parsed)
			variantID = &id
		}

		out = append(out, printAreaRow{
			Row:       rowNum,
			ProductID: uint(productID),
			VariantID: variantID,
			Name:      strings.TrimSpace(cells[2]),
			Input: model.PrintAreaInput{
				X: parseCell(cells[3]),
				Y: parseCell(cells[4]),
				W: parseCell(cells[5]),
				H: parseCell(cells[6]),
			},
		})
	}

	fmt.Printf("Valid rows: %d, skipped rows: %d\n", len(out), skipped)
	return out, nil
}

// parseCell leaves unparsable cells nil so the registry reports them as missing.
func parseCell(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func importPrintAreas(ctx context.Context, areas service.PrintAreaService, rows []printAreaRow) importResult {
	var result importResult
	for _, r := range rows {
		if _, err := areas.Set(ctx, r.ProductID, r.VariantID, r.Name, r.Input); err != nil {
			result.Failures = append(result.Failures, rowFailure{Row: r.Row, Err: err})
			continue
		}
		result.Imported++
	}
	return result
}
