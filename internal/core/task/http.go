/*
Package task provides the HTTP interface for the company task board.

All routes require a session; the company scope always comes from the token.
*/
package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/stockroomhq/stockroom/internal/platform/request"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for task operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with task endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTasks)
	router.Post("/", handler.createTask)
	router.Put("/{id}", handler.updateTask)
	router.Delete("/{id}", handler.deleteTask)

	return router
}

/*
GET /api/v1/tasks.

Description: Lists the company's tasks, most urgent first.

Response:
  - 200: []Task: Success
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.service.ListTasks(request.Context(), company)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

/*
POST /api/v1/tasks.

Description: Creates a task. Urgency defaults to "medium" when omitted.

Request (Body):
  - { "title": "string", "description": "string", "urgency": "low|medium|high" }

Response:
  - 201: Task: Created object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Task
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Company = claims.Company
	input.CreatedBy = claims.UserID

	if err := handler.service.CreateTask(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
PUT /api/v1/tasks/{id}.

Description: Rewrites a task's title, description, and urgency.

Request:
  - id: string (Target UUID)
  - body: Task (JSON)

Response:
  - 200: Task: Updated entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Task not found
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Task
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.ID = requestutil.Param(request, "id")
	input.Company = company

	if err := handler.service.UpdateTask(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, input)
}

/*
DELETE /api/v1/tasks/{id}.

Description: Removes a task permanently.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Task not found
*/
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTask(request.Context(), company, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
