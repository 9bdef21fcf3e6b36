// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom/internal/platform/middleware"
	requestutil "github.com/stockroomhq/stockroom/internal/platform/request"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup    : Creates a company (on first use) and an account.
//   - POST /login     : Authenticates and returns a session JWT.
//   - POST /federated : Google Sign-In, creating the account when needed.
//   - POST /token     : Exchanges a provider ID token for a session JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/federated", handler.federated)
	router.Post("/token", handler.exchangeToken)
	router.Post("/verify-email", handler.verifyEmail)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	CompanyName string `json:"companyName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type federatedRequest struct {
	IDToken     string `json:"idToken"`
	CompanyName string `json:"companyName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type exchangeTokenRequest struct {
	IDToken string `json:"idToken"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// # Response Payloads

// sessionResponse is the token payload every successful sign-in returns.
// It mirrors the session keys the client stores: token, uid, role, company,
// and the user's theme preference.
type sessionResponse struct {
	Token   string   `json:"token"`
	UID     string   `json:"uid"`
	Role    sec.Role `json:"role"`
	Company string   `json:"company"`
	Theme   string   `json:"theme"`
	User    *User    `json:"user"`
}

func newSessionResponse(session *AuthSession) sessionResponse {
	return sessionResponse{
		Token:   session.Token,
		UID:     session.User.ID,
		Role:    session.User.Role,
		Company: session.User.Company,
		Theme:   session.User.Theme,
		User:    session.User,
	}
}

/*
Signup handles the creation of a new company account.

POST /api/v1/auth/signup

Description: Validates input, creates the company when its slug is unused,
and persists the member account. The first member becomes admin. No token
is issued; the account must verify its email and log in.

Request:
  - Body: signupRequest (CompanyName, FirstName, LastName, Email, Password)

Response:
  - 201: {uid, role, requiresVerification}
  - 400: ErrInvalidJSON: Bad input or weak password
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCompanyName, input.CompanyName).
		Required(FieldFirstName, input.FirstName).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		CompanyName: input.CompanyName,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Password:    input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"uid":                  user.ID,
		"role":                 user.Role,
		"company":              user.Company,
		"requiresVerification": true,
	})
}

/*
Login authenticates an account and mints a session token.

POST /api/v1/auth/login

Description: Verifies the password and returns a signed session JWT
carrying uid, role, and company. Unverified emails are rejected.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: sessionResponse: Token payload
  - 401: ErrUnauthorized: Invalid credentials
  - 403: ErrForbidden: Email not verified
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
Federated handles Google Sign-In, creating the account on first contact.

POST /api/v1/auth/federated

Description: Verifies the provider token against the provider's JWKS. For a
first-time subject without a company name, responds with
requiresAdditionalInfo so the client can collect one and retry. With
completion fields a company/account is created (admin if the company is new).

Request:
  - Body: federatedRequest (IDToken, CompanyName?, FirstName?, LastName?)

Response:
  - 200: sessionResponse, or {requiresAdditionalInfo:true} with no token
  - 201: sessionResponse: Account created during this sign-in
  - 401: ErrUnauthorized: Invalid provider token
  - 409: ErrConflict: Email registered with a password sign-in
*/
func (handler *Handler) federated(writer http.ResponseWriter, request *http.Request) {
	var input federatedRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.IDToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldIDToken, "is required"))
		return
	}

	session, err := handler.authService.FederatedSignIn(request.Context(), FederatedInput{
		IDToken:     input.IDToken,
		CompanyName: input.CompanyName,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if session.RequiresAdditionalInfo {
		respond.OK(writer, session)
		return
	}

	if session.Created {
		respond.Created(writer, newSessionResponse(session))
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
ExchangeToken swaps a provider ID token for a server session token.

POST /api/v1/auth/token

Description: Used by the client session resolver. Never creates accounts;
an unknown subject is a 404 so the resolver degrades to signed-out.

Request:
  - Body: exchangeTokenRequest (IDToken)

Response:
  - 200: sessionResponse: Token payload
  - 401: ErrUnauthorized: Invalid provider token
  - 404: ErrNotFound: No account for this subject
*/
func (handler *Handler) exchangeToken(writer http.ResponseWriter, request *http.Request) {
	var input exchangeTokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.IDToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldIDToken, "is required"))
		return
	}

	session, err := handler.authService.ExchangeToken(request.Context(), input.IDToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
Logout revokes the presented session token.

POST /api/v1/auth/logout

Description: Blacklists the bearer token until its natural expiry. Always
succeeds for authenticated callers.

Response:
  - 204: No Content: Session revoked
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	rawToken := bearerToken(request)
	if rawToken != "" {
		if err := handler.authService.Logout(request.Context(), rawToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(request *http.Request) string {
	parts := strings.Split(request.Header.Get("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

/*
VerifyEmail confirms a user's email ownership.

POST /api/v1/auth/verify-email

Description: Validates an email verification token and marks the account as verified.

Request:
  - Body: verifyEmailRequest (Token)

Response:
  - 200: Success: Email verified
  - 400: ErrInvalidJSON: Missing or invalid token
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var input verifyEmailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "is required"))
		return
	}

	if err := handler.authService.VerifyEmail(request.Context(), input.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Email verified successfully",
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Description: Sends a password reset link to the provided email if the account exists.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Success: Generic acknowledgement regardless of account existence
  - 400: ErrInvalidJSON: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this email is registered, a reset link has been sent.",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Description: Validates the reset token and updates the user's password.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Bad token or weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}
