// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/platform/ctxutil"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
)

// withSession wraps a handler so every request carries the given claims,
// standing in for the authentication middleware.
func withSession(next http.Handler, claims *sec.SessionClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		next.ServeHTTP(writer, request.WithContext(ctxutil.WithSession(request.Context(), claims)))
	})
}

/*
TestRoutes_DeleteRoleGuard verifies that item deletion is reserved for
managers and admins: staff sessions get 403 and the item survives, while a
manager session deletes it.
*/
func TestRoutes_DeleteRoleGuard(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	routes := inventory.NewHandler(service).Routes()

	item := &inventory.Item{Company: "acme-hardware", Name: "Claw Hammer", Quantity: 10}
	require.NoError(t, service.CreateItem(context.Background(), item))

	// Staff may read but not delete.
	staff := &sec.SessionClaims{UserID: "staff-1", Role: string(sec.RoleStaff), Company: "acme-hardware"}
	recorder := httptest.NewRecorder()
	withSession(routes, staff).ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/"+item.ID, nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	_, err := service.GetItem(context.Background(), "acme-hardware", item.ID)
	require.NoError(t, err)

	recorder = httptest.NewRecorder()
	withSession(routes, staff).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+item.ID, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	// A manager's delete goes through.
	manager := &sec.SessionClaims{UserID: "manager-1", Role: string(sec.RoleManager), Company: "acme-hardware"}
	recorder = httptest.NewRecorder()
	withSession(routes, manager).ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/"+item.ID, nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	_, err = service.GetItem(context.Background(), "acme-hardware", item.ID)
	assert.Error(t, err)
}
