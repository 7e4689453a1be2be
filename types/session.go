package types

import "encoding/json"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login payload. Registration may return the same
// shape or just the created user, in which case AccessToken is empty.
type TokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
}

// ErrorResponse is the optional error body of the remote service. Detail is
// either a string or, for request validation errors, a list of objects
// carrying a "msg" field.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail,omitempty"`
}

// Message returns the human readable detail, or "" when none was sent.
func (e ErrorResponse) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(e.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &items); err == nil {
		for _, it := range items {
			if it.Msg != "" {
				return it.Msg
			}
		}
	}
	return ""
}
