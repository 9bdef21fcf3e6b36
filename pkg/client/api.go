// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// User is a company member as the API returns it.
type User struct {
	UID       string `json:"uid"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Provider  string `json:"provider"`
	Theme     string `json:"theme"`
}

// AuthSession is the payload of every successful sign-in.
type AuthSession struct {
	Token   string `json:"token"`
	UID     string `json:"uid"`
	Role    Role   `json:"role"`
	Company string `json:"company"`
	Theme   string `json:"theme"`
	User    *User  `json:"user"`

	// RequiresAdditionalInfo marks a first federated sign-in that still
	// needs a company name. No token is issued in that case.
	RequiresAdditionalInfo bool `json:"requiresAdditionalInfo"`
}

// Item is one inventory line.
type Item struct {
	ID           string    `json:"id"`
	Company      string    `json:"company"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Supplier     string    `json:"supplier"`
	Sold         int       `json:"sold"`
	ReorderLevel int       `json:"reorderLevel"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ImportResult reports a completed CSV import.
type ImportResult struct {
	Created int `json:"created"`
}

// Task is one task board entry.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Urgency     string    `json:"urgency"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SignupInput carries a new password account registration.
type SignupInput struct {
	CompanyName string `json:"companyName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// SignupResult acknowledges a registration awaiting email verification.
type SignupResult struct {
	UID                  string `json:"uid"`
	Role                 Role   `json:"role"`
	Company              string `json:"company"`
	RequiresVerification bool   `json:"requiresVerification"`
}

// # Authentication

// Signup registers a password account. No token is issued until the email
// address is verified.
func (client *Client) Signup(context context.Context, input SignupInput) (*SignupResult, error) {
	result := &SignupResult{}
	if err := client.do(context, http.MethodPost, "/auth/signup", input, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Login signs in with email and password and stores the session.
func (client *Client) Login(context context.Context, email, password string) (*AuthSession, error) {
	return client.signIn(context, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// FederatedProfile carries the extra fields a first federated sign-in may
// need once the provider token alone is not enough.
type FederatedProfile struct {
	CompanyName string
	FirstName   string
	LastName    string
}

// FederatedSignIn signs in with a provider ID token, creating the account
// on first contact. When the result carries RequiresAdditionalInfo the
// caller must retry with a filled [FederatedProfile]; no token is stored.
func (client *Client) FederatedSignIn(context context.Context, idToken string, profile FederatedProfile) (*AuthSession, error) {
	return client.signIn(context, "/auth/federated", map[string]string{
		"idToken":     idToken,
		"companyName": profile.CompanyName,
		"firstName":   profile.FirstName,
		"lastName":    profile.LastName,
	})
}

// ExchangeToken swaps a provider ID token for an API session token. The
// account must already exist.
func (client *Client) ExchangeToken(context context.Context, idToken string) (*AuthSession, error) {
	return client.signIn(context, "/auth/token", map[string]string{
		"idToken": idToken,
	})
}

// signIn posts credentials and stores the resulting session. A response
// without a token (requiresAdditionalInfo) leaves the session untouched.
func (client *Client) signIn(context context.Context, path string, body map[string]string) (*AuthSession, error) {
	session := &AuthSession{}
	if err := client.do(context, http.MethodPost, path, body, session); err != nil {
		return nil, err
	}

	if session.Token != "" {
		if err := client.session.Save(SessionData{
			Token:   session.Token,
			UID:     session.UID,
			Role:    session.Role,
			Company: session.Company,
			Theme:   session.Theme,
		}); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// Logout revokes the held token server-side and clears the session. The
// local session is cleared even when the revocation call fails.
func (client *Client) Logout(context context.Context) error {
	err := client.do(context, http.MethodPost, "/auth/logout", nil, nil)
	client.session.Clear()
	return err
}

// # Account

// Me returns the profile behind the current token.
func (client *Client) Me(context context.Context) (*User, error) {
	user := &User{}
	if err := client.do(context, http.MethodGet, "/account/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SettingsInput carries the editable profile fields.
type SettingsInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Theme     string `json:"theme"`
}

// UpdateSettings updates the caller's own profile.
func (client *Client) UpdateSettings(context context.Context, input SettingsInput) (*User, error) {
	user := &User{}
	if err := client.do(context, http.MethodPut, "/account/settings", input, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Inventory

// ItemInput carries the writable fields of an inventory line.
type ItemInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Supplier     string  `json:"supplier"`
	ReorderLevel int     `json:"reorderLevel"`
}

// ListInventory returns one page of the company's items.
func (client *Client) ListInventory(context context.Context, page, limit int) ([]Item, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	path := "/inventory"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []Item
	if err := client.do(context, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem adds one inventory line.
func (client *Client) CreateItem(context context.Context, input ItemInput) (*Item, error) {
	item := &Item{}
	if err := client.do(context, http.MethodPost, "/inventory", input, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates the given fields of an item.
func (client *Client) UpdateItem(context context.Context, id string, input ItemInput) (*Item, error) {
	item := &Item{}
	if err := client.do(context, http.MethodPut, "/inventory/"+id, input, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item. Requires the manager or admin role.
func (client *Client) DeleteItem(context context.Context, id string) error {
	return client.do(context, http.MethodDelete, "/inventory/"+id, nil, nil)
}

// LowStock returns the items at or below their reorder level.
func (client *Client) LowStock(context context.Context) ([]Item, error) {
	var items []Item
	if err := client.do(context, http.MethodGet, "/inventory/low-stock", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadInventoryCSV imports items from a CSV file. Any rejected row fails
// the whole file and its message is returned verbatim.
func (client *Client) UploadInventoryCSV(context context.Context, fileName string, file io.Reader) (*ImportResult, error) {
	fields := map[string]string{headerCompany: client.session.Snapshot().Company}

	result := &ImportResult{}
	if err := client.uploadMultipart(context, "/inventory/upload-csv", fields, "file", fileName, file, result); err != nil {
		return nil, err
	}
	return result, nil
}

// # Tasks

// TaskInput carries a new task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// ListTasks returns the company's tasks.
func (client *Client) ListTasks(context context.Context) ([]Task, error) {
	var tasks []Task
	if err := client.do(context, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task to the board.
func (client *Client) CreateTask(context context.Context, input TaskInput) (*Task, error) {
	task := &Task{}
	if err := client.do(context, http.MethodPost, "/tasks", input, task); err != nil {
		return nil, err
	}
	return task, nil
}

// # User Management

// ListUsers returns the company's members. Requires the admin role.
func (client *Client) ListUsers(context context.Context) ([]User, error) {
	var users []User
	if err := client.do(context, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PromoteUser raises a staff member to manager. The admin's password is
// re-verified with a fresh login first; if that fails, the management
// endpoint is never called.
func (client *Client) PromoteUser(context context.Context, uid, password string) (*User, error) {
	return client.manageUser(context, http.MethodPut, "/users/"+uid+"/promote", password)
}

// DemoteUser lowers a manager to staff. Same password re-verification as
// [Client.PromoteUser].
func (client *Client) DemoteUser(context context.Context, uid, password string) (*User, error) {
	return client.manageUser(context, http.MethodPut, "/users/"+uid+"/demote", password)
}

// RemoveUser removes a non-admin member. Same password re-verification as
// [Client.PromoteUser].
func (client *Client) RemoveUser(context context.Context, uid, password string) error {
	_, err := client.manageUser(context, http.MethodDelete, "/users/"+uid+"/remove", password)
	return err
}

// manageUser re-authenticates the acting admin for a fresh token, then
// performs the privileged call with the password confirmation in the body.
// When the login fails the management endpoint is never touched, and when
// the management call fails the prior session is restored, so a failed
// action leaves the client exactly as it was.
func (client *Client) manageUser(context context.Context, method, path, password string) (*User, error) {
	snapshot := client.session.Snapshot()
	if snapshot.UID == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Not signed in"}
	}

	me, err := client.Me(context)
	if err != nil {
		return nil, err
	}
	if _, err := client.Login(context, me.Email, password); err != nil {
		return nil, err
	}

	body := map[string]string{"password": password}
	var user *User
	if method == http.MethodDelete {
		err = client.do(context, method, path, body, nil)
	} else {
		user = &User{}
		err = client.do(context, method, path, body, user)
	}
	if err != nil {
		// The snapshot passed Save once already, so restoring cannot fail.
		_ = client.session.Save(snapshot)
		return nil, err
	}
	return user, nil
}
