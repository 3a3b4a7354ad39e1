package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pr-poehali-dev/food-delivery-django/models"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Content-Type, X-User-Role"
	corsMaxAge       = "86400"
)

// jsonResponse builds a response envelope with the standard JSON and
// CORS headers
func jsonResponse(statusCode int, payload interface{}) models.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Response{
			StatusCode: http.StatusInternalServerError,
			Headers: map[string]string{
				"Content-Type":                "application/json",
				"Access-Control-Allow-Origin": corsAllowOrigin,
			},
			Body: `{"error":"failed to encode response"}`,
		}
	}

	return models.Response{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": corsAllowOrigin,
		},
		Body: string(body),
	}
}

// errorResponse builds a structured error envelope
func errorResponse(statusCode int, message string) models.Response {
	return jsonResponse(statusCode, map[string]string{"error": message})
}

// preflightResponse answers a CORS preflight with the methods the
// resource supports. Empty body, no store access.
func preflightResponse(allowMethods string) models.Response {
	return models.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  corsAllowOrigin,
			"Access-Control-Allow-Methods": allowMethods,
			"Access-Control-Allow-Headers": corsAllowHeaders,
			"Access-Control-Max-Age":       corsMaxAge,
		},
		Body: "",
	}
}

// parseBody decodes the envelope body into target. An absent body reads
// as an empty JSON object so defaulted fields still apply.
func parseBody(req models.Request, target interface{}) error {
	body := req.Body
	if body == "" {
		body = "{}"
	}
	return json.Unmarshal([]byte(body), target)
}
