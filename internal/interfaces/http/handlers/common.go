// Package handlers contains the HTTP handlers for the API surface.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// maxRequestBody bounds JSON request bodies.  File uploads have their own
// limit from the server configuration.
const maxRequestBody = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeSuccess wraps data in the standard response envelope.
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, common.NewSuccessResponse(data))
}

// writeAppError maps a typed application error to its HTTP status.  Server
// side failures are masked so internal details stay out of responses.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(w, status, common.NewErrorResponse(string(code), message))
}

// decodeJSON parses a bounded JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidParam("request body is not valid JSON").WithDetail(err.Error())
	}
	return nil
}

// urlID extracts and validates an ID path parameter.
func urlID(r *http.Request, param string) (common.ID, error) {
	id := common.ID(chi.URLParam(r, param))
	if err := id.Validate(); err != nil {
		return "", errors.InvalidParam(param + " is not a valid identifier").WithDetail(err.Error())
	}
	return id, nil
}

// urlCaseID extracts the case identifier path parameter.
func urlCaseID(r *http.Request) (string, error) {
	caseID := chi.URLParam(r, "caseID")
	if caseID == "" {
		return "", errors.InvalidParam("caseID must not be empty")
	}
	return caseID, nil
}
