package api

import "github.com/samcharles93/pngme/internal/stego"

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// DecodeResponse is returned by /v1/png/decode?all=true.
type DecodeResponse struct {
	Messages []*stego.Message `json:"messages"`
}
