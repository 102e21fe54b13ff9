package types

type SuccessEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details any      `json:"details,omitempty"`
	Stack   []string `json:"stack,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
