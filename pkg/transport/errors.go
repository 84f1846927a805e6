package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
)

// genericErrorDetail is the body for failures that must not expose
// internals to the caller.
const genericErrorDetail = "An unexpected error occurred"

// WriteDetail writes a JSON {"detail": ...} response with the given
// status code.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.DetailResponse{Detail: detail})
}

// WriteError maps an error from the validation or provider layers onto
// an HTTP status and detail body. Unrecognized errors become a generic
// 500 so internals never leak to the caller.
func WriteError(w http.ResponseWriter, err error) {
	status, detail := classify(err)
	WriteDetail(w, status, detail)
}

func classify(err error) (int, string) {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}

	var authErr *provider.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, "Invalid Groq API key"
	}

	var reqErr *provider.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadGateway, "The completion backend rejected the request"
	}

	var unavailErr *provider.UnavailableError
	if errors.As(err, &unavailErr) {
		return http.StatusServiceUnavailable, "Groq service is temporarily unavailable"
	}

	return http.StatusInternalServerError, genericErrorDetail
}
