// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
)

const validCSV = `Item Name,Description,Category,Quantity,Price,Supplier
Claw Hammer,16oz steel,Tools,25,14.99,Acme Supply
Wood Screws,Box of 100,Fasteners,120,6.50,FastenCo
`

/*
TestParseCSV_Valid verifies that a well-formed file produces items with
defaults applied.
*/
func TestParseCSV_Valid(t *testing.T) {
	items, err := inventory.ParseCSV(strings.NewReader(validCSV))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Claw Hammer", items[0].Name)
	assert.Equal(t, "Tools", items[0].Category)
	assert.Equal(t, 25, items[0].Quantity)
	assert.Equal(t, 14.99, items[0].Price)
	assert.Equal(t, "Acme Supply", items[0].Supplier)
	assert.Equal(t, inventory.DefaultReorderLevel, items[0].ReorderLevel)
	assert.Equal(t, 0, items[0].Sold)

	assert.Equal(t, "Wood Screws", items[1].Name)
	assert.Equal(t, 120, items[1].Quantity)
}

/*
TestParseCSV_HeaderTolerance verifies that header matching ignores case
and surrounding whitespace but not column order.
*/
func TestParseCSV_HeaderTolerance(t *testing.T) {
	relaxed := "item name, description , CATEGORY,Quantity,Price,Supplier\nBolt,,Fasteners,10,1.25,FastenCo\n"
	items, err := inventory.ParseCSV(strings.NewReader(relaxed))
	require.NoError(t, err)
	assert.Len(t, items, 1)

	reordered := "Description,Item Name,Category,Quantity,Price,Supplier\nx,Bolt,Fasteners,10,1.25,FastenCo\n"
	_, err = inventory.ParseCSV(strings.NewReader(reordered))
	assert.EqualError(t, err, "Invalid CSV format")
}

/*
TestParseCSV_InvalidStructure verifies that structural problems reject the
whole file with the single "Invalid CSV format" message.
*/
func TestParseCSV_InvalidStructure(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty file", ""},
		{"header only", "Item Name,Description,Category,Quantity,Price,Supplier\n"},
		{"wrong header", "Name,Desc,Cat,Qty,Price,Supplier\nHammer,,Tools,1,2.0,Acme\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := inventory.ParseCSV(strings.NewReader(testCase.body))
			require.Error(t, err)
			assert.EqualError(t, err, "Invalid CSV format")
		})
	}
}

/*
TestParseCSV_RowErrors verifies that type-invalid data rows are reported as
unprocessable with the offending row number (header counts as row 1).
*/
func TestParseCSV_RowErrors(t *testing.T) {
	const header = "Item Name,Description,Category,Quantity,Price,Supplier\n"

	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing column",
			body:    header + "Hammer,,Tools,1,2.0\n",
			message: "Row 2: wrong number of columns",
		},
		{
			name:    "negative quantity",
			body:    header + "Hammer,,Tools,-1,2.0,Acme\n",
			message: "Row 2: quantity must be a non-negative integer",
		},
		{
			name:    "non-numeric price",
			body:    header + "Hammer,,Tools,1,cheap,Acme\n",
			message: "Row 2: price must be a non-negative number",
		},
		{
			name:    "blank name",
			body:    header + " ,,Tools,1,2.0,Acme\n",
			message: "Row 2: item name is required",
		},
		{
			name:    "later row reported by number",
			body:    header + "Hammer,,Tools,1,2.0,Acme\nBolt,,Fasteners,many,1.0,FastenCo\n",
			message: "Row 3: quantity must be a non-negative integer",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := inventory.ParseCSV(strings.NewReader(testCase.body))
			require.Error(t, err)
			assert.EqualError(t, err, testCase.message)
		})
	}
}
