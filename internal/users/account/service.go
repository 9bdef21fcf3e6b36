// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/mail"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// Themes lists the accepted interface theme values.
var Themes = []string{"light", "dark"}

// SettingsInput carries the editable profile fields.
type SettingsInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Theme     string `json:"theme"`
}

// # Service Layer

// Service implements company member management and account settings.
//
// Every privileged mutation re-verifies the acting admin's password against
// the stored hash before touching the target. A wrong password returns 401
// and the target row stays untouched.
type Service struct {
	members Repository
	mailer  mail.Mailer
	logger  *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(members Repository, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{
		members: members,
		mailer:  mailer,
		logger:  logger,
	}
}

/*
Me returns the profile of the authenticated member.

Parameters:
  - context: context.Context
  - company: string
  - userID: string

Returns:
  - *auth.User: Resolved profile
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Me(context context.Context, company, userID string) (*auth.User, error) {
	return service.members.FindByID(context, company, userID)
}

/*
UpdateSettings replaces the member's own profile fields and returns the
refreshed profile.

Parameters:
  - context: context.Context
  - company: string
  - userID: string
  - input: SettingsInput

Returns:
  - *auth.User: Updated profile
  - error: Validation or persistence failures
*/
func (service *Service) UpdateSettings(context context.Context, company, userID string, input SettingsInput) (*auth.User, error) {
	if input.Theme == "" {
		input.Theme = auth.DefaultTheme
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldFirstName, input.FirstName)
	validator.OneOf("theme", input.Theme, Themes...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.members.UpdateProfile(context, company, userID, input.FirstName, input.LastName, input.Theme); err != nil {
		return nil, err
	}

	return service.members.FindByID(context, company, userID)
}

/*
ListUsers returns every active member of the company, oldest first.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - []*auth.User: Active members
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, company string) ([]*auth.User, error) {
	return service.members.List(context, company)
}

/*
PromoteUser raises a staff member to manager after re-verifying the acting
admin's password.

Parameters:
  - context: context.Context
  - company: string
  - actorID: string (the authenticated admin)
  - targetID: string
  - password: string (the admin's own password)

Returns:
  - *auth.User: Target with the new role
  - error: apperr.Unauthorized, apperr.Unprocessable, or persistence failures
*/
func (service *Service) PromoteUser(context context.Context, company, actorID, targetID, password string) (*auth.User, error) {
	if err := service.confirmActor(context, company, actorID, password); err != nil {
		return nil, err
	}
	return service.changeRole(context, company, targetID, sec.RoleStaff, sec.RoleManager)
}

/*
DemoteUser lowers a manager to staff after re-verifying the acting admin's
password.

Parameters:
  - context: context.Context
  - company: string
  - actorID: string
  - targetID: string
  - password: string

Returns:
  - *auth.User: Target with the new role
  - error: apperr.Unauthorized, apperr.Unprocessable, or persistence failures
*/
func (service *Service) DemoteUser(context context.Context, company, actorID, targetID, password string) (*auth.User, error) {
	if err := service.confirmActor(context, company, actorID, password); err != nil {
		return nil, err
	}
	return service.changeRole(context, company, targetID, sec.RoleManager, sec.RoleStaff)
}

/*
RemoveUser marks a non-admin member as removed after re-verifying the acting
admin's password, then sends a courtesy email to the removed member.

Parameters:
  - context: context.Context
  - company: string
  - actorID: string
  - targetID: string
  - password: string

Returns:
  - error: apperr.Unauthorized, apperr.Forbidden, or persistence failures
*/
func (service *Service) RemoveUser(context context.Context, company, actorID, targetID, password string) error {
	if err := service.confirmActor(context, company, actorID, password); err != nil {
		return err
	}

	target, err := service.members.FindByID(context, company, targetID)
	if err != nil {
		return err
	}
	if target.Role == sec.RoleAdmin {
		return apperr.Forbidden("Admin accounts cannot be removed")
	}

	if err := service.members.Remove(context, company, targetID); err != nil {
		return err
	}

	service.sendRemovalNotice(context, target)
	return nil
}

// confirmActor checks the acting admin's password against the stored hash.
// Federated admins have no password hash, so they cannot pass the step-up
// and must set a password through the reset flow first.
func (service *Service) confirmActor(context context.Context, company, actorID, password string) error {
	actor, err := service.members.FindByID(context, company, actorID)
	if err != nil {
		return err
	}
	if actor.PasswordHash == "" || !sec.CheckPasswordHash(password, actor.PasswordHash) {
		return apperr.Unauthorized("Password confirmation failed")
	}
	return nil
}

// changeRole moves the target from one role to another, rejecting any other
// starting role.
func (service *Service) changeRole(context context.Context, company, targetID string, from, to sec.Role) (*auth.User, error) {
	target, err := service.members.FindByID(context, company, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role != from {
		return nil, apperr.Unprocessable(fmt.Sprintf("Only %s accounts can become %s", from, to))
	}

	if err := service.members.UpdateRole(context, company, targetID, to); err != nil {
		return nil, err
	}

	service.sendRoleNotice(context, target, to)

	target.Role = to
	return target, nil
}

// sendRoleNotice tells the member about their new role. Delivery failures
// are logged, never propagated.
func (service *Service) sendRoleNotice(context context.Context, member *auth.User, role sec.Role) {
	message := mail.Message{
		To:      member.Email,
		Subject: "Your Stockroom role has changed",
		Body: fmt.Sprintf("Hi %s,\n\nYour role at %s is now %s.\n\nThe Stockroom Team",
			member.FirstName, member.Company, role),
	}
	if err := service.mailer.Send(context, message); err != nil {
		service.logger.Warn("role_notice_failed", "email", member.Email, "error", err)
	}
}

// sendRemovalNotice tells the member their account was removed.
func (service *Service) sendRemovalNotice(context context.Context, member *auth.User) {
	message := mail.Message{
		To:      member.Email,
		Subject: "Your Stockroom account was removed",
		Body: fmt.Sprintf("Hi %s,\n\nYour account at %s has been removed by an administrator.\n\nThe Stockroom Team",
			member.FirstName, member.Company),
	}
	if err := service.mailer.Send(context, message); err != nil {
		service.logger.Warn("removal_notice_failed", "email", member.Email, "error", err)
	}
}
