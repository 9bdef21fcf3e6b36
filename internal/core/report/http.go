/*
Package report provides the HTTP interface for reports and analytics.

# Routing Strategy

Reports expose aggregate company data, so both routers are mounted behind a
manager/admin role guard in the server. Staff see inventory, not reports.
*/
package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/stockroomhq/stockroom/internal/platform/request"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
)

// dateLayout is the accepted format of the start/end query parameters.
const dateLayout = "2006-01-02"

// # Handler Implementation

// Handler implements the HTTP layer for report operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new report [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the tabular report endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getReport)
	router.Get("/export", handler.exportReport)

	return router
}

// AnalyticsRoutes returns a [chi.Router] with the dashboard endpoints,
// mounted at /analytics alongside the /reports router.
func (handler *Handler) AnalyticsRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getAnalytics)
	router.Get("/summary", handler.getSummary)

	return router
}

// queryFromRequest parses type/start/end parameters into a report [Query].
// Dates use YYYY-MM-DD; the end bound is inclusive of the whole day.
func queryFromRequest(request *http.Request) (Query, error) {
	values := request.URL.Query()
	query := Query{Type: values.Get("type")}

	if raw := values.Get("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query, validate.RequiredError("start", "must be a date in YYYY-MM-DD format")
		}
		query.Start = &start
	}

	if raw := values.Get("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query, validate.RequiredError("end", "must be a date in YYYY-MM-DD format")
		}
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		query.End = &endOfDay
	}

	return query, nil
}

/*
GET /api/v1/reports.

Description: Returns the tabular report selected by type, optionally
narrowed to an update-time window.

Request:
  - type: string (inventory | low_stock | sales_trends, defaults to inventory)
  - start, end: date (YYYY-MM-DD, optional)

Response:
  - 200: []Row: Report lines
  - 400: Validation: Unknown report type or malformed date
  - 403: ErrForbidden: Staff cannot access reports
*/
func (handler *Handler) getReport(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query, err := queryFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rows, err := handler.service.GetReport(request.Context(), company, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rows)
}

/*
GET /api/v1/reports/export.

Description: Streams the selected report as a CSV attachment. Takes the
same type/start/end filters as the JSON variant.

Response:
  - 200: text/csv attachment
  - 400: Validation: Unknown report type or malformed date
*/
func (handler *Handler) exportReport(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query, err := queryFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rows, err := handler.service.GetReport(request.Context(), company, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filename := "inventory-report-" + time.Now().UTC().Format(dateLayout) + ".csv"
	if err := WriteCSV(respond.CSV(writer, filename), rows); err != nil {
		// Headers are already sent; nothing useful can be written now.
		return
	}
}

/*
GET /api/v1/analytics/summary.

Description: Returns the headline aggregate block for the dashboard.

Response:
  - 200: Summary: Aggregates
*/
func (handler *Handler) getSummary(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.GetSummary(request.Context(), company)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
GET /api/v1/analytics.

Description: Returns total stock and the top five sellers.

Response:
  - 200: Analytics: Dashboard aggregates
*/
func (handler *Handler) getAnalytics(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	analytics, err := handler.service.GetAnalytics(request.Context(), company)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, analytics)
}
