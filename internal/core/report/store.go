// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report

import "context"

// # Report Data Access

// Repository defines the read-only queries behind reports.
type Repository interface {

	/*
		Rows returns the tabular report for a company.

		Parameters:
		  - context: context.Context
		  - company: string
		  - query: Query (Type plus optional start/end window)

		Returns:
		  - []*Row: Report lines
		  - error: Retrieval failures
	*/
	Rows(context context.Context, company string, query Query) ([]*Row, error)

	/*
		Summary aggregates the headline numbers for a company.

		Parameters:
		  - context: context.Context
		  - company: string

		Returns:
		  - *Summary: Aggregate block
		  - error: Retrieval failures
	*/
	Summary(context context.Context, company string) (*Summary, error)
}
