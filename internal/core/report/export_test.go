// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/core/report"
)

/*
TestWriteCSV verifies the export format: header row plus one record per line,
timestamps in RFC3339 UTC.
*/
func TestWriteCSV(t *testing.T) {
	lastUpdated := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	rows := []*report.Row{
		{Name: "Claw Hammer", Stock: 3, Sold: 42, LastUpdated: lastUpdated},
		{Name: "Wood Screws", Stock: 120, Sold: 7, LastUpdated: lastUpdated},
	}

	var builder strings.Builder
	require.NoError(t, report.WriteCSV(&builder, rows))

	lines := strings.Split(strings.TrimSpace(builder.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Item Name,Stock,Sold,Last Updated", lines[0])
	assert.Equal(t, "Claw Hammer,3,42,2026-03-14T09:30:00Z", lines[1])
	assert.Equal(t, "Wood Screws,120,7,2026-03-14T09:30:00Z", lines[2])
}

/*
TestWriteCSV_Empty verifies that an empty report still writes the header.
*/
func TestWriteCSV_Empty(t *testing.T) {
	var builder strings.Builder
	require.NoError(t, report.WriteCSV(&builder, nil))
	assert.Equal(t, "Item Name,Stock,Sold,Last Updated\n", builder.String())
}
