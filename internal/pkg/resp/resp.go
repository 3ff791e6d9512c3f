/*
Package resp provides helpers for sending JSON responses.

Success responses carry the endpoint's payload directly; error responses use
a uniform {code, message} body with the HTTP status mapped from the error.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/logx"
)

// ErrorBody is the JSON body for every error response.
type ErrorBody struct {
	// Code is the business error code (see the errs package).
	Code int `json:"code"`

	// Message is the client-friendly error description.
	Message string `json:"message"`
}

// RespondJSON sets the Content-Type and sends payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends payload with HTTP 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, payload any) {
	RespondJSON(w, r, http.StatusOK, payload)
}

// RespondError sends the error's mapped HTTP status with a {code, message} body.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorBody{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
