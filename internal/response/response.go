package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	customError "doodle-functions/pkg/errors"
)

// CORS headers expected by the mobile client on every response.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Options acknowledges a CORS preflight request.
func Options() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
	}
}

// OK wraps a handler-specific body in a 200 response. The body is expected
// to carry the success flag.
func OK(body any) events.APIGatewayV2HTTPResponse {
	rspBody, err := json.Marshal(body)
	if err != nil {
		return Err(http.StatusInternalServerError, "Failed to encode response", "")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
		Body:       string(rspBody),
	}
}

// Err builds the error envelope shared by every handler.
func Err(statusCode int, msg string, details string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(errorBody{
		Error:   msg,
		Details: details,
	})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}
}

// FromError maps the error taxonomy onto HTTP statuses: invalid request 400,
// missing entity 404, anything else 500.
func FromError(err error) events.APIGatewayV2HTTPResponse {
	var invalidErr customError.InvalidRequestErr
	if errors.As(err, &invalidErr) {
		return Err(http.StatusBadRequest, invalidErr.Error(), "")
	}

	var notFoundErr customError.NotFoundErr
	if errors.As(err, &notFoundErr) {
		return Err(http.StatusNotFound, notFoundErr.Error(), "")
	}

	var upstreamErr customError.UpstreamErr
	if errors.As(err, &upstreamErr) {
		return Err(http.StatusInternalServerError, "Upstream request failed", upstreamErr.Detail)
	}

	return Err(http.StatusInternalServerError, "Internal server error", err.Error())
}

func headers() map[string]string {
	h := make(map[string]string, len(corsHeaders)+1)
	for key, val := range corsHeaders {
		h[key] = val
	}
	h["Content-Type"] = "application/json"
	return h
}
