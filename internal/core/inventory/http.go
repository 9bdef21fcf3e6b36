/*
Package inventory provides the HTTP interface for stock management.

It exposes endpoints for item CRUD, bulk CSV import, and low-stock listings.

# Routing Strategy

  - Authenticated: All inventory routes require a session.
  - Scoped: The company slug always comes from the session token, never
    from the request body or query string.

The handler translates between the REST layer and the [Service] domain.
*/
package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/middleware"
	requestutil "github.com/stockroomhq/stockroom/internal/platform/request"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/pkg/convert"
	"github.com/stockroomhq/stockroom/pkg/pagination"
)

// maxCSVUploadBytes caps import files at 5 MiB.
const maxCSVUploadBytes = 5 << 20

// # Handler Implementation

// Handler implements the HTTP layer for inventory operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new inventory [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with inventory endpoints.
// The router is mounted behind authentication middleware in the server.
// Deletion is destructive and reserved for managers and admins; every
// other operation is open to all three roles.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listItems)
	router.Post("/", handler.createItem)
	router.Get("/low-stock", handler.listLowStock)
	router.Post("/upload-csv", handler.importCSV)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getItem)
		subRouter.Put("/", handler.updateItem)
		subRouter.With(middleware.RequireRoles(sec.RoleManager, sec.RoleAdmin)).
			Delete("/", handler.deleteItem)
	})

	return router
}

// # Item Endpoints

/*
GET /api/v1/inventory.

Description: Retrieves a paginated list of the company's items.
Supports searching by name and filtering by category or low-stock status.

Request:
  - q: string (Name search)
  - category: string (Exact category)
  - low_stock: bool (Only items at or below reorder level)
  - limit, page: int

Response:
  - 200: []Item: Paginated list
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:        queryParams.Get("q"),
		Category:     queryParams.Get("category"),
		LowStockOnly: convert.ToBool(queryParams.Get("low_stock")),
	}

	items, total, err := handler.service.ListItems(request.Context(), company, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/v1/inventory/low-stock.

Description: Lists every item whose quantity is at or below its reorder level.
Backs the restock warnings on the dashboard.

Response:
  - 200: []Item: Paginated list
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listLowStock(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{LowStockOnly: true}

	items, total, err := handler.service.ListItems(request.Context(), company, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/v1/inventory/{id}.

Description: Retrieves full details of one item.

Request:
  - id: string (UUID)

Response:
  - 200: Item: Success
  - 404: ErrNotFound: Item not found in this company
*/
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetItem(request.Context(), company, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/inventory.

Description: Creates a new stock item. The reorder level defaults when omitted.

Request (Body):
  - Item JSON object

Response:
  - 201: Item: Created object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Item
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Company = company
	input.Sold = 0

	if err := handler.service.CreateItem(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/inventory/{id}.

Description: Applies a partial update. Absent fields keep their stored value.

Request:
  - id: string (Target UUID)
  - body: UpdateInput (JSON, all fields optional)

Response:
  - 200: Item: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Item not found
*/
func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateItem(request.Context(), company, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/v1/inventory/{id}.

Description: Removes an item permanently.

Request:
  - id: string (Target UUID)

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Item not found
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), company, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Bulk Import

/*
POST /api/v1/inventory/upload-csv.

Description: Imports a CSV file of items. The file must carry the exact
header "Item Name, Description, Category, Quantity, Price, Supplier".
The whole file is inserted atomically or rejected.

Request (Multipart):
  - file: CSV upload
  - companyName: string (Advisory; must match the session company when set)

Response:
  - 201: ImportResult: Number of created rows
  - 400: Validation: "Invalid CSV format" or missing file
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: companyName field disagrees with the session
  - 422: Unprocessable: Row-level type error with the row number
*/
func (handler *Handler) importCSV(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxCSVUploadBytes)

	file, _, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "A CSV file upload is required"))
		return
	}
	defer file.Close()

	// The form carries an advisory companyName alongside the file. The
	// session stays authoritative; a disagreement is rejected like the
	// header checks in the auth middleware.
	if formCompany := request.FormValue("companyName"); formCompany != "" && formCompany != company {
		respond.Error(writer, request, apperr.Forbidden("Session does not match request company"))
		return
	}

	result, err := handler.service.ImportCSV(request.Context(), company, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}
