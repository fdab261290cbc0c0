package domain

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	ContentType    string `json:"contentType"`
	Platform       string `json:"platform"`
	TargetAudience string `json:"targetAudience"`
	UserPrompt     string `json:"userPrompt"`
}

// EditRequest is the body of POST /api/chat.
type EditRequest struct {
	Platform        string `json:"platform"`
	ContentType     string `json:"contentType"`
	OriginalContent string `json:"originalContent"`
	EditRequest     string `json:"editRequest"`
}

// ContentResponse is returned by both content endpoints on success.
type ContentResponse struct {
	Content string `json:"content"`
}

// ErrorResponse is returned by both content endpoints on failure.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
}
