// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package client is the official Go SDK for the Stockroom API.

It bundles four pieces that dashboards and CLI tools build on:

  - [Client]: a thin HTTP wrapper. One request per call, no retries, no
    caching. Errors are normalized to the API's single error message.
  - [Session]: the in-memory credential store shared by every call.
  - [Resolver]: turns a federated provider's sign-in event stream into
    resolved [AuthState] values.
  - [Decide]: the pure route guard deciding what a protected view may do
    with the current [AuthState].
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Role mirrors the server-side role labels carried in session tokens.
type Role string

// The three roles every account holds exactly one of.
const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Identifying headers sent alongside the bearer token. The server treats
// them as advisory and rejects requests where they disagree with the token.
const (
	headerUID     = "uid"
	headerCompany = "companyName"
)

// APIError is a non-2xx response translated into a Go error. Error()
// returns exactly the message the API sent, so callers can surface it
// to end users unchanged.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// successEnvelope mirrors the API's {"data": ...} wrapper.
type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope mirrors the API's error wrapper.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// # Client

// Client calls the Stockroom API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, typically to install
// a transport-level timeout or a test server's client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// New constructs a [Client] for the API at baseURL (no trailing slash,
// no /api/v1 suffix) with an empty session.
func New(baseURL string, options ...Option) *Client {
	// No transport timeout by default. Callers bound requests with the
	// context they pass, or install a timeout via WithHTTPClient.
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		session:    NewSession(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Session returns the credential store backing this client.
func (client *Client) Session() *Session {
	return client.session
}

// do performs one JSON request against /api/v1 and decodes the data
// envelope into out when out is non-nil.
func (client *Client) do(context context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	return decodeResponse(response, out)
}

// authorize attaches the bearer token and identifying headers from the
// current session, if any.
func (client *Client) authorize(request *http.Request) {
	snapshot := client.session.Snapshot()
	if snapshot.Token == "" {
		return
	}
	request.Header.Set("Authorization", "Bearer "+snapshot.Token)
	request.Header.Set(headerUID, snapshot.UID)
	request.Header.Set(headerCompany, snapshot.Company)
}

// decodeResponse maps a non-2xx response to [*APIError] and otherwise
// unwraps the data envelope into out.
func decodeResponse(response *http.Response, out interface{}) error {
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiError := &APIError{Status: response.StatusCode, Message: http.StatusText(response.StatusCode)}
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil && envelope.Error != "" {
			apiError.Message = envelope.Error
			apiError.Code = envelope.Code
		}
		return apiError
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	var envelope successEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}
	return nil
}

// uploadMultipart performs one multipart request. Used by the CSV import.
func (client *Client) uploadMultipart(context context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("client: write form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("client: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("client: copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("client: finish form: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.baseURL+"/api/v1"+path, &buffer)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: POST %s: %w", path, err)
	}
	defer response.Body.Close()

	return decodeResponse(response, out)
}
