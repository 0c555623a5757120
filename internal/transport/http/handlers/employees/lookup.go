package employeeshandler

import (
	"context"
	"errors"
	"net/http"

	"workforce/internal/domain/employees"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
)

// Lookup is satisfied by employees.Service. Nested resources use it to answer
// 404 for an unknown employee before touching their own store.
type Lookup interface {
	Get(ctx context.Context, employeeID string) (employees.Employee, error)
}

// RequireEmployee writes the error response and reports false when the
// employee cannot be loaded.
func RequireEmployee(w http.ResponseWriter, r *http.Request, lookup Lookup, employeeID string) (employees.Employee, bool) {
	emp, err := lookup.Get(r.Context(), employeeID)
	if err == nil {
		return emp, true
	}
	requestID := middleware.GetRequestID(r.Context())
	if errors.Is(err, employees.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return employees.Employee{}, false
	}
	api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", requestID)
	return employees.Employee{}, false
}
