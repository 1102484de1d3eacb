package dto

import "time"

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

type ContactResponse struct {
	SentAt time.Time `json:"sent_at"`
}
