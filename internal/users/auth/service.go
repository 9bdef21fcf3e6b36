// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package auth implements account creation and sign-in for Stockroom.

# Responsibilities

  - Signup: Creates the company on first use and the member account.
  - Login: Password verification and session token minting.
  - Federated: Google Sign-In with deferred profile completion.
  - Exchange: Provider ID token to server session token (hybrid variant).
  - Recovery: Email verification and password reset flows.
  - Logout: Session revocation via a self-expiring blacklist.

# Session Model

Sessions are stateless JWTs carrying uid, role, and company. There is no
refresh rotation; a token lives for [SessionTokenTTL] and logout blacklists
its digest for the remainder of that window.
*/
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/stockroomhq/stockroom/internal/core/company"
	"github.com/stockroomhq/stockroom/internal/identity"
	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/mail"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/pkg/slug"
	"github.com/stockroomhq/stockroom/pkg/uuid"
)

// TokenProvider mints and verifies session JWTs. Satisfied by [sec.TokenService].
type TokenProvider interface {
	GenerateSessionToken(userID string, role sec.Role, company string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// # Definitions & Constructors

// Service implements the authentication business logic.
type Service struct {
	users        UserRepository
	companies    company.Repository
	resetTokens  ResetTokenRepository
	verifyTokens VerificationTokenRepository
	revoked      RevokedTokenRepository
	tokens       TokenProvider
	provider     identity.Provider
	mailer       mail.Mailer
	metrics      *metrics.Metrics
	logger       *slog.Logger

	// publicBaseURL is the externally visible URL used in emailed links.
	publicBaseURL string
}

// ServiceDeps bundles the dependencies of [NewService].
type ServiceDeps struct {
	Users         UserRepository
	Companies     company.Repository
	ResetTokens   ResetTokenRepository
	VerifyTokens  VerificationTokenRepository
	Revoked       RevokedTokenRepository
	Tokens        TokenProvider
	Provider      identity.Provider
	Mailer        mail.Mailer
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	PublicBaseURL string
}

// NewService constructs a new authentication [Service].
func NewService(deps ServiceDeps) *Service {
	return &Service{
		users:         deps.Users,
		companies:     deps.Companies,
		resetTokens:   deps.ResetTokens,
		verifyTokens:  deps.VerifyTokens,
		revoked:       deps.Revoked,
		tokens:        deps.Tokens,
		provider:      deps.Provider,
		mailer:        deps.Mailer,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		publicBaseURL: deps.PublicBaseURL,
	}
}

// # Input Payloads

// SignupInput carries the data needed to create an account.
type SignupInput struct {
	CompanyName string
	FirstName   string
	LastName    string
	Email       string
	Password    string
}

// LoginInput carries password sign-in credentials.
type LoginInput struct {
	Email    string
	Password string
}

// FederatedInput carries a provider ID token plus optional completion fields.
type FederatedInput struct {
	IDToken     string
	CompanyName string
	FirstName   string
	LastName    string
}

// # Operations

/*
Signup registers a new member account, creating the company when its slug
is not yet taken.

Description: The first account of a company becomes its admin; everyone who
joins an existing company starts as staff. No session token is issued; the
account must verify its email (via the mailed link) and then log in. The
verification email is a best-effort side effect and never fails the signup.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created account
  - error: Validation or conflict failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	companySlug := slug.From(input.CompanyName)
	if companySlug == "" {
		return nil, validate.RequiredError(FieldCompanyName, "must contain letters or digits")
	}

	created, err := service.companies.EnsureExists(context, &company.Company{
		Slug: companySlug,
		Name: strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		return nil, err
	}

	role := sec.RoleStaff
	if created {
		role = sec.RoleAdmin
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Company:      companySlug,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: passwordHash,
		Role:         role,
		Provider:     ProviderPassword,
		Theme:        DefaultTheme,
		Status:       StatusActive,
	}

	if err := service.users.Create(context, user); err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "CONFLICT" {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, err
	}

	if created {
		service.recordFoundingAdmin(context, companySlug, user.ID)
	}

	service.sendVerificationEmail(context, user)

	service.logger.InfoContext(context, "user_signed_up",
		slog.String("user_id", user.ID),
		slog.String("company", user.Company),
		slog.String("role", string(user.Role)),
		slog.Bool("company_created", created),
	)

	return user, nil
}

/*
Login authenticates an account with email and password.

Description: Credential failures (unknown email, wrong password, federated
account without a password) collapse into the same generic message so the
endpoint cannot be used to probe which emails are registered. An account
whose email is not yet verified is rejected with 403 after the credential
check passes.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Session token and user
  - error: apperr.Unauthorized or apperr.Forbidden
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	genericFailure := apperr.Unauthorized("Invalid login credentials")

	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		service.metrics.IncAuthFailure("password")
		return nil, genericFailure
	}

	// Federated accounts have no password hash. bcrypt would reject the
	// empty hash anyway; the explicit check keeps the intent readable.
	if user.PasswordHash == "" || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.metrics.IncAuthFailure("password")
		return nil, genericFailure
	}

	if !user.EmailVerified {
		service.metrics.IncAuthFailure("password")
		return nil, apperr.Forbidden("Email is not verified")
	}

	token, err := service.tokens.GenerateSessionToken(user.ID, user.Role, user.Company, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.metrics.IncAuthSuccess("password")

	return &AuthSession{Token: token, User: user}, nil
}

/*
FederatedSignIn exchanges a verified provider ID token for a session.

Description: When the subject has no account yet, the flow depends on the
completion fields. Without a company name the response carries
RequiresAdditionalInfo and the client must ask the user for one. With a
company name a new account is created the same way Signup does it, except
the email is already verified by the provider.

Parameters:
  - context: context.Context
  - input: FederatedInput

Returns:
  - *AuthSession: Session, or a RequiresAdditionalInfo marker
  - error: apperr.Unauthorized on an invalid ID token
*/
func (service *Service) FederatedSignIn(context context.Context, input FederatedInput) (*AuthSession, error) {
	ident, err := service.provider.Verify(input.IDToken)
	if err != nil {
		service.metrics.IncAuthFailure("google")
		return nil, apperr.Unauthorized("Invalid identity token")
	}

	user, err := service.users.FindByProviderSubject(context, ident.Subject)
	createdNow := false
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return nil, err
		}

		session, created, createErr := service.completeFederatedSignup(context, ident, input)
		if createErr != nil || session != nil {
			return session, createErr
		}
		user = created
		createdNow = true
	}

	token, err := service.tokens.GenerateSessionToken(user.ID, user.Role, user.Company, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.metrics.IncAuthSuccess("google")

	return &AuthSession{Token: token, User: user, Created: createdNow}, nil
}

/*
ExchangeToken swaps a provider ID token for a server session token.

Description: The hybrid-variant exchange used by the client SDK's session
resolver. Unlike FederatedSignIn it never creates accounts; an unknown
subject is a plain 404 so the resolver can degrade to a signed-out state.

Parameters:
  - context: context.Context
  - idToken: string

Returns:
  - *AuthSession: Session token and user
  - error: apperr.Unauthorized or apperr.NotFound
*/
func (service *Service) ExchangeToken(context context.Context, idToken string) (*AuthSession, error) {
	ident, err := service.provider.Verify(idToken)
	if err != nil {
		service.metrics.IncAuthFailure("google")
		return nil, apperr.Unauthorized("Invalid identity token")
	}

	user, err := service.users.FindByProviderSubject(context, ident.Subject)
	if err != nil {
		return nil, err
	}

	token, err := service.tokens.GenerateSessionToken(user.ID, user.Role, user.Company, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.metrics.IncAuthSuccess("google")

	return &AuthSession{Token: token, User: user}, nil
}

/*
completeFederatedSignup creates an account for a first-time federated subject.

Returns a RequiresAdditionalInfo session when no company name was supplied,
or the created user when signup completed.
*/
func (service *Service) completeFederatedSignup(context context.Context, ident *identity.Identity, input FederatedInput) (*AuthSession, *User, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return &AuthSession{RequiresAdditionalInfo: true}, nil, nil
	}

	// The provider email might already be registered as a password account.
	// Linking is out of scope; the user must sign in with their password.
	if _, err := service.users.FindByEmail(context, ident.Email); err == nil {
		return nil, nil, apperr.Conflict("Email is already registered with a password sign-in")
	}

	companySlug := slug.From(input.CompanyName)
	if companySlug == "" {
		return nil, nil, validate.RequiredError(FieldCompanyName, "must contain letters or digits")
	}

	created, err := service.companies.EnsureExists(context, &company.Company{
		Slug: companySlug,
		Name: strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		return nil, nil, err
	}

	role := sec.RoleStaff
	if created {
		role = sec.RoleAdmin
	}

	firstName, lastName := input.FirstName, input.LastName
	if firstName == "" {
		firstName, lastName = splitName(ident.Name)
	}

	user := &User{
		ID:              uuid.New(),
		Company:         companySlug,
		Email:           strings.ToLower(ident.Email),
		FirstName:       firstName,
		LastName:        lastName,
		Role:            role,
		Provider:        ProviderGoogle,
		ProviderSubject: ident.Subject,
		EmailVerified:   true,
		Theme:           DefaultTheme,
		Status:          StatusActive,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, nil, err
	}

	if created {
		service.recordFoundingAdmin(context, companySlug, user.ID)
	}

	service.logger.InfoContext(context, "federated_user_signed_up",
		slog.String("user_id", user.ID),
		slog.String("company", user.Company),
		slog.String("role", string(user.Role)),
	)

	return nil, user, nil
}

// recordFoundingAdmin links the first admin back to their company row.
// The account itself already carries the admin role, so a failure here is
// logged rather than failing the signup.
func (service *Service) recordFoundingAdmin(context context.Context, companySlug, userID string) {
	if err := service.companies.SetAdmin(context, companySlug, userID); err != nil {
		service.logger.WarnContext(context, "founding_admin_not_recorded",
			slog.String("company", companySlug),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

/*
Logout revokes the session token so it cannot be replayed.

Description: Logout is idempotent. An unparsable or already expired token is
treated as logged out, so the endpoint never leaks token validity.

Parameters:
  - context: context.Context
  - rawToken: string (The bearer token presented by the client)

Returns:
  - error: Blacklist persistence failures
*/
func (service *Service) Logout(context context.Context, rawToken string) error {
	claims, err := service.tokens.VerifyToken(rawToken)
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	return service.revoked.Revoke(context, sec.HashToken(rawToken), remaining)
}

/*
RequestPasswordReset initiates the password recovery flow.

Description: Always succeeds from the caller's perspective. Unknown emails
and federated accounts are silently skipped to prevent enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Token storage failures only
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		service.logger.DebugContext(context, "password_reset_unknown_email")
		return nil
	}

	if user.Provider != ProviderPassword {
		service.logger.DebugContext(context, "password_reset_federated_account",
			slog.String("user_id", user.ID),
		)
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.resetTokens.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return apperr.Internal(err)
	}

	message := mail.Message{
		To:      user.Email,
		Subject: "Reset your Stockroom password",
		Body: "Hi " + user.FirstName + ",\n\n" +
			"We received a request to reset your password. Open the link below " +
			"within one hour to choose a new one:\n\n" +
			service.publicBaseURL + "/reset-password?token=" + token + "\n\n" +
			"If you did not request this, you can safely ignore this email.",
	}
	if err := service.mailer.Send(context, message); err != nil {
		service.logger.ErrorContext(context, "password_reset_mail_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

/*
ResetPassword completes the recovery flow with a one-time token.

Description: Sessions minted before the reset stay valid until their
natural expiry; only the credential changes.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: apperr.NotFound on a bad token, persistence failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return err
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.users.UpdatePassword(context, userID, newHash); err != nil {
		return err
	}

	// One-time use. A failed delete is harmless; the TTL still applies.
	if err := service.resetTokens.Delete(context, token); err != nil {
		service.logger.WarnContext(context, "reset_token_delete_failed",
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(context, "password_reset_completed",
		slog.String("user_id", userID),
	)

	return nil
}

/*
VerifyEmail confirms email ownership with a one-time token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: apperr.NotFound on a bad token, persistence failures
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {
	userID, err := service.verifyTokens.Get(context, token)
	if err != nil {
		return err
	}

	if err := service.users.MarkVerified(context, userID); err != nil {
		return err
	}

	if err := service.verifyTokens.Delete(context, token); err != nil {
		service.logger.WarnContext(context, "verify_token_delete_failed",
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// sendVerificationEmail generates a verification token and emails the link.
// Failures are logged, never propagated; signup must not depend on SMTP.
func (service *Service) sendVerificationEmail(context context.Context, user *User) {
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err != nil {
		service.logger.ErrorContext(context, "verification_token_generate_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := service.verifyTokens.Set(context, token, user.ID, VerificationTokenTTL); err != nil {
		service.logger.ErrorContext(context, "verification_token_store_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	message := mail.Message{
		To:      user.Email,
		Subject: "Verify your Stockroom email",
		Body: "Hi " + user.FirstName + ",\n\n" +
			"Welcome to Stockroom. Confirm your email address by opening:\n\n" +
			service.publicBaseURL + "/verify-email?token=" + token + "\n\n" +
			"The link expires in 24 hours.",
	}
	if err := service.mailer.Send(context, message); err != nil {
		service.logger.ErrorContext(context, "verification_mail_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
}
