// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// exportHeader is the column set of an exported report file.
var exportHeader = []string{"Item Name", "Stock", "Sold", "Last Updated"}

/*
WriteCSV streams report rows as a CSV document.

Parameters:
  - writer: io.Writer (Usually the HTTP response body)
  - rows: []*Row

Returns:
  - error: Write failures
*/
func WriteCSV(writer io.Writer, rows []*Row) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(exportHeader); err != nil {
		return fmt.Errorf("report: failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Name,
			strconv.Itoa(row.Stock),
			strconv.Itoa(row.Sold),
			row.LastUpdated.UTC().Format(time.RFC3339),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("report: failed to write csv row: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("report: failed to flush csv: %w", err)
	}

	return nil
}
