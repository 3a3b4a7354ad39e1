package models

// Request is the transport-agnostic request envelope both handlers accept.
// Body carries the raw JSON document; an absent body is treated as {}.
type Request struct {
	HTTPMethod string            `json:"httpMethod"`
	Body       string            `json:"body"`
	PathParams map[string]string `json:"pathParams"`
}

// Response is the envelope handlers return. Body is the JSON-encoded
// payload; IsBase64Encoded is always false for this API.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}
