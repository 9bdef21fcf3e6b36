// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
)

/*
TestValidator_Required verifies required field checks, including whitespace-only values.
*/
func TestValidator_Required(t *testing.T) {
	v := &validate.Validator{}
	v.Required("name", "Claw Hammer")
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.Required("name", "   ")
	assert.Error(t, v.Err())
}

/*
TestValidator_Password verifies the account password complexity policy.
*/
func TestValidator_Password(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid password", "Str0ng!Pass", true},
		{"too short", "S7!a", false},
		{"missing uppercase", "weak1pass!", false},
		{"missing lowercase", "WEAK1PASS!", false},
		{"missing digit", "Weakpass!!", false},
		{"missing symbol", "Weak1passs", false},
		{"empty", "", false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Password("password", testCase.password)

			if testCase.valid {
				assert.NoError(t, v.Err())
			} else {
				assert.Error(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email verifies email format checks.
*/
func TestValidator_Email(t *testing.T) {
	v := &validate.Validator{}
	v.Email("email", "owner@acme-hardware.com")
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.Email("email", "not-an-email")
	assert.Error(t, v.Err())
}

/*
TestValidator_Slug verifies slug format checks.
*/
func TestValidator_Slug(t *testing.T) {
	valid := []string{"acme", "acme-hardware", "shop-42"}
	invalid := []string{"", "Acme", "-acme", "acme-", "acme--hw", "acme hardware"}

	for _, value := range valid {
		v := &validate.Validator{}
		v.Slug("company", value)
		assert.NoError(t, v.Err(), "expected %q to be a valid slug", value)
	}

	for _, value := range invalid {
		v := &validate.Validator{}
		v.Slug("company", value)
		assert.Error(t, v.Err(), "expected %q to be an invalid slug", value)
	}
}

/*
TestValidator_NonNegative verifies checks on quantities and prices.
*/
func TestValidator_NonNegative(t *testing.T) {
	v := &validate.Validator{}
	v.NonNegative("quantity", 0).NonNegative("price", 19.99)
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.NonNegative("quantity", -1)
	assert.Error(t, v.Err())
}

/*
TestValidator_OneOf verifies membership checks against an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("urgency", "high", "low", "medium", "high")
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.OneOf("urgency", "urgent", "low", "medium", "high")
	assert.Error(t, v.Err())
}

/*
TestValidator_Chaining verifies that multiple failures accumulate into
a single validation error carrying every field.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("name", "").
		Email("email", "bad").
		NonNegative("price", -5).
		Err()

	require.Error(t, err)

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
}
