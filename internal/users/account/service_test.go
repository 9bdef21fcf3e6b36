// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/dberr"
	"github.com/stockroomhq/stockroom/internal/platform/mail"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// fakeMemberRepository keeps members in a map and counts mutations so tests
// can prove a failed step-up touched nothing.
type fakeMemberRepository struct {
	members   map[string]*auth.User
	mutations int
}

func newFakeMemberRepository() *fakeMemberRepository {
	return &fakeMemberRepository{members: map[string]*auth.User{}}
}

func (repo *fakeMemberRepository) List(_ context.Context, company string) ([]*auth.User, error) {
	var members []*auth.User
	for _, member := range repo.members {
		if member.Company == company && member.Status == auth.StatusActive {
			members = append(members, member)
		}
	}
	return members, nil
}

func (repo *fakeMemberRepository) FindByID(_ context.Context, company, userID string) (*auth.User, error) {
	member, ok := repo.members[userID]
	if !ok || member.Company != company || member.Status != auth.StatusActive {
		return nil, dberr.ErrNotFound
	}
	return member, nil
}

func (repo *fakeMemberRepository) UpdateRole(_ context.Context, company, userID string, role sec.Role) error {
	repo.mutations++
	repo.members[userID].Role = role
	return nil
}

func (repo *fakeMemberRepository) UpdateProfile(_ context.Context, company, userID, firstName, lastName, theme string) error {
	repo.mutations++
	member := repo.members[userID]
	member.FirstName = firstName
	member.LastName = lastName
	member.Theme = theme
	return nil
}

func (repo *fakeMemberRepository) Remove(_ context.Context, company, userID string) error {
	repo.mutations++
	repo.members[userID].Status = auth.StatusRemoved
	return nil
}

// mailRecorder captures outbound messages.
type mailRecorder struct {
	sent []mail.Message
}

func (recorder *mailRecorder) Send(_ context.Context, message mail.Message) error {
	recorder.sent = append(recorder.sent, message)
	return nil
}

const adminPassword = "Str0ng!pass"

type accountFixture struct {
	service *Service
	repo    *fakeMemberRepository
	mail    *mailRecorder
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	repo := newFakeMemberRepository()
	recorder := &mailRecorder{}
	service := NewService(repo, recorder, slog.New(slog.NewTextHandler(io.Discard, nil)))

	hash, err := sec.HashPassword(adminPassword)
	require.NoError(t, err)

	repo.members["admin-1"] = &auth.User{
		ID: "admin-1", Company: "acme-hardware", Email: "owner@acme.test",
		FirstName: "Ana", PasswordHash: hash, Role: sec.RoleAdmin,
		Provider: auth.ProviderPassword, Status: auth.StatusActive, Theme: auth.DefaultTheme,
	}
	repo.members["staff-1"] = &auth.User{
		ID: "staff-1", Company: "acme-hardware", Email: "staff@acme.test",
		FirstName: "Ben", Role: sec.RoleStaff,
		Provider: auth.ProviderPassword, Status: auth.StatusActive, Theme: auth.DefaultTheme,
	}
	repo.members["manager-1"] = &auth.User{
		ID: "manager-1", Company: "acme-hardware", Email: "manager@acme.test",
		FirstName: "Cleo", Role: sec.RoleManager,
		Provider: auth.ProviderPassword, Status: auth.StatusActive, Theme: auth.DefaultTheme,
	}

	return &accountFixture{service: service, repo: repo, mail: recorder}
}

/*
TestPromoteUser verifies the staff to manager transition and the role
notice email.
*/
func TestPromoteUser(t *testing.T) {
	fixture := newAccountFixture(t)

	user, err := fixture.service.PromoteUser(context.Background(),
		"acme-hardware", "admin-1", "staff-1", adminPassword)
	require.NoError(t, err)

	assert.Equal(t, sec.RoleManager, user.Role)
	assert.Equal(t, sec.RoleManager, fixture.repo.members["staff-1"].Role)
	require.Len(t, fixture.mail.sent, 1)
	assert.Equal(t, "staff@acme.test", fixture.mail.sent[0].To)
}

/*
TestPromoteUser_WrongPassword verifies a failed step-up returns 401 and
leaves the target completely untouched.
*/
func TestPromoteUser_WrongPassword(t *testing.T) {
	fixture := newAccountFixture(t)

	_, err := fixture.service.PromoteUser(context.Background(),
		"acme-hardware", "admin-1", "staff-1", "wrong-password")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Equal(t, "Password confirmation failed", appError.Message)

	assert.Zero(t, fixture.repo.mutations)
	assert.Equal(t, sec.RoleStaff, fixture.repo.members["staff-1"].Role)
	assert.Empty(t, fixture.mail.sent)
}

/*
TestPromoteUser_TargetNotStaff verifies only staff can be promoted.
*/
func TestPromoteUser_TargetNotStaff(t *testing.T) {
	fixture := newAccountFixture(t)

	_, err := fixture.service.PromoteUser(context.Background(),
		"acme-hardware", "admin-1", "manager-1", adminPassword)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
	assert.Zero(t, fixture.repo.mutations)
}

/*
TestDemoteUser verifies the manager to staff transition.
*/
func TestDemoteUser(t *testing.T) {
	fixture := newAccountFixture(t)

	user, err := fixture.service.DemoteUser(context.Background(),
		"acme-hardware", "admin-1", "manager-1", adminPassword)
	require.NoError(t, err)

	assert.Equal(t, sec.RoleStaff, user.Role)
	assert.Equal(t, sec.RoleStaff, fixture.repo.members["manager-1"].Role)
}

/*
TestRemoveUser verifies a removed member disappears from queries and
receives the courtesy email.
*/
func TestRemoveUser(t *testing.T) {
	fixture := newAccountFixture(t)

	err := fixture.service.RemoveUser(context.Background(),
		"acme-hardware", "admin-1", "staff-1", adminPassword)
	require.NoError(t, err)

	assert.Equal(t, auth.StatusRemoved, fixture.repo.members["staff-1"].Status)
	_, err = fixture.service.Me(context.Background(), "acme-hardware", "staff-1")
	require.Error(t, err)

	require.Len(t, fixture.mail.sent, 1)
	assert.Equal(t, "staff@acme.test", fixture.mail.sent[0].To)
	assert.Contains(t, fixture.mail.sent[0].Subject, "removed")
}

/*
TestRemoveUser_AdminTarget verifies admin accounts cannot be removed.
*/
func TestRemoveUser_AdminTarget(t *testing.T) {
	fixture := newAccountFixture(t)

	err := fixture.service.RemoveUser(context.Background(),
		"acme-hardware", "admin-1", "admin-1", adminPassword)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
	assert.Equal(t, "Admin accounts cannot be removed", appError.Message)
	assert.Zero(t, fixture.repo.mutations)
}

/*
TestStepUp_FederatedAdmin verifies an admin without a stored password hash
cannot pass the step-up check.
*/
func TestStepUp_FederatedAdmin(t *testing.T) {
	fixture := newAccountFixture(t)
	fixture.repo.members["admin-1"].PasswordHash = ""
	fixture.repo.members["admin-1"].Provider = auth.ProviderGoogle

	_, err := fixture.service.PromoteUser(context.Background(),
		"acme-hardware", "admin-1", "staff-1", adminPassword)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Zero(t, fixture.repo.mutations)
}

/*
TestUpdateSettings verifies profile updates and theme validation.
*/
func TestUpdateSettings(t *testing.T) {
	fixture := newAccountFixture(t)

	user, err := fixture.service.UpdateSettings(context.Background(),
		"acme-hardware", "staff-1", SettingsInput{FirstName: "Benjamin", LastName: "Ortiz", Theme: "dark"})
	require.NoError(t, err)

	assert.Equal(t, "Benjamin", user.FirstName)
	assert.Equal(t, "Ortiz", user.LastName)
	assert.Equal(t, "dark", user.Theme)

	_, err = fixture.service.UpdateSettings(context.Background(),
		"acme-hardware", "staff-1", SettingsInput{FirstName: "Benjamin", Theme: "sepia"})
	require.Error(t, err)
	assert.EqualError(t, err, "Validation failed")
}
