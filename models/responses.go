package models

// ErrorResponse is the JSON error body returned by the auth server. Older
// server versions use Error/ErrorDescription, newer ones Code/ErrorCode/Msg.
type ErrorResponse struct {
	Code             int    `json:"code,omitempty"`
	ErrorCode        string `json:"error_code,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Text returns the most descriptive message present in the body.
func (e ErrorResponse) Text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}

	return ""
}
