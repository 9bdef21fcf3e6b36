// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
)

// csvHeader is the exact column set a stock import file must carry.
// Matching is case-insensitive and whitespace-tolerant, order is fixed.
var csvHeader = []string{"Item Name", "Description", "Category", "Quantity", "Price", "Supplier"}

// errInvalidCSV is the client-facing error for a structurally broken file:
// unreadable content, a wrong header, or no data rows at all.
var errInvalidCSV = apperr.ValidationError("Invalid CSV format")

/*
ParseCSV reads an import file and converts its rows into items.

Description: The first record must match [csvHeader]; a mismatch rejects the
file with "Invalid CSV format" (400). Rows that fail type checks (empty
name, non-integer or negative quantity, negative price) are reported as 422
with the offending row number, counted from 1 for the header. The whole
file is rejected on the first bad row, which pairs with the transactional
[Repository.BulkCreate] to keep imports atomic.

Parameters:
  - reader: io.Reader (Raw CSV bytes, typically the uploaded multipart file)

Returns:
  - []*Item: Parsed rows without IDs or company scope (the service assigns those)
  - error: "Invalid CSV format" (400) or a row-level Unprocessable (422)
*/
func ParseCSV(reader io.Reader) ([]*Item, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, errInvalidCSV
	}
	if !headerMatches(header) {
		return nil, errInvalidCSV
	}

	var items []*Item
	rowNumber := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, rowError(rowNumber, "wrong number of columns")
			}
			return nil, errInvalidCSV
		}

		item, err := parseRecord(record, rowNumber)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, errInvalidCSV
	}

	return items, nil
}

// headerMatches compares the first record against the required column names.
func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, column := range header {
		if !strings.EqualFold(strings.TrimSpace(column), csvHeader[i]) {
			return false
		}
	}
	return true
}

// rowError builds the 422 for a type-invalid data row.
func rowError(rowNumber int, problem string) error {
	return apperr.Unprocessable(fmt.Sprintf("Row %d: %s", rowNumber, problem))
}

// parseRecord converts one CSV record into an item skeleton.
func parseRecord(record []string, rowNumber int) (*Item, error) {
	if len(record) != len(csvHeader) {
		return nil, rowError(rowNumber, "wrong number of columns")
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return nil, rowError(rowNumber, "item name is required")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil || quantity < 0 {
		return nil, rowError(rowNumber, "quantity must be a non-negative integer")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil || price < 0 {
		return nil, rowError(rowNumber, "price must be a non-negative number")
	}

	return &Item{
		Name:         name,
		Description:  strings.TrimSpace(record[1]),
		Category:     strings.TrimSpace(record[2]),
		Quantity:     quantity,
		Price:        price,
		Supplier:     strings.TrimSpace(record[5]),
		ReorderLevel: DefaultReorderLevel,
	}, nil
}
