/*
Package account provides the HTTP interface for member management and
personal account settings.

The /users router is mounted behind an admin-only guard; the /account router
only needs a session.
*/
package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/stockroomhq/stockroom/internal/platform/request"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// # Handler Implementation

// Handler implements the HTTP layer for account operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the admin member-management endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Put("/{uid}/promote", handler.promoteUser)
	router.Put("/{uid}/demote", handler.demoteUser)
	router.Delete("/{uid}/remove", handler.removeUser)

	return router
}

// AccountRoutes returns a [chi.Router] with the personal account endpoints.
func (handler *Handler) AccountRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.me)
	router.Put("/settings", handler.updateSettings)

	return router
}

// stepUpRequest carries the acting admin's password confirmation.
type stepUpRequest struct {
	Password string `json:"password"`
}

/*
GET /api/v1/users.

Description: Lists the company's active members, oldest first.

Response:
  - 200: []User: Success
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	company, err := requestutil.RequiredCompany(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	users, err := handler.service.ListUsers(request.Context(), company)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
PUT /api/v1/users/{uid}/promote.

Description: Raises a staff member to manager. The body carries the acting
admin's own password, re-verified before any change.

Request:
  - password: string (required)

Response:
  - 200: User: Target with the new role
  - 401: ErrUnauthorized: Password confirmation failed
  - 422: ErrUnprocessable: Target is not staff
*/
func (handler *Handler) promoteUser(writer http.ResponseWriter, request *http.Request) {
	handler.changeRole(writer, request, handler.service.PromoteUser)
}

/*
PUT /api/v1/users/{uid}/demote.

Description: Lowers a manager to staff. Same password confirmation as
promote.

Response:
  - 200: User: Target with the new role
  - 401: ErrUnauthorized: Password confirmation failed
  - 422: ErrUnprocessable: Target is not a manager
*/
func (handler *Handler) demoteUser(writer http.ResponseWriter, request *http.Request) {
	handler.changeRole(writer, request, handler.service.DemoteUser)
}

// roleChange is the shared shape of PromoteUser and DemoteUser.
type roleChange func(context context.Context, company, actorID, targetID, password string) (*auth.User, error)

// changeRole handles the shared step-up plumbing of promote and demote.
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request, change roleChange) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload stepUpRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "uid")
	user, err := change(request.Context(), session.Company, session.UserID, targetID, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{uid}/remove.

Description: Removes a non-admin member. The body carries the acting admin's
own password, re-verified before any change.

Request:
  - password: string (required)

Response:
  - 204: No content
  - 401: ErrUnauthorized: Password confirmation failed
  - 403: ErrForbidden: Target is an admin
*/
func (handler *Handler) removeUser(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload stepUpRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "uid")
	err = handler.service.RemoveUser(request.Context(), session.Company, session.UserID, targetID, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/account/me.

Description: Returns the resolved profile for the current token.

Response:
  - 200: User: Profile
  - 404: ErrNotFound: Account no longer exists
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), session.Company, session.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /api/v1/account/settings.

Description: Updates the caller's own profile fields.

Request:
  - firstName: string (required)
  - lastName: string
  - theme: string (light | dark, defaults to light)

Response:
  - 200: User: Updated profile
  - 400: Validation: Missing name or unknown theme
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload SettingsInput
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateSettings(request.Context(), session.Company, session.UserID, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
