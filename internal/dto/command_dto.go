package dto

type ChordRequest struct {
	Key   string `json:"key" validate:"required"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
	Alt   bool   `json:"alt"`
}

type DispatchResponse struct {
	Handled bool   `json:"handled"`
	Action  string `json:"action,omitempty"`
	Text    string `json:"text,omitempty"`
}
