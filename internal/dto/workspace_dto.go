package dto

import (
	"time"

	"github.com/google/uuid"
)

// Tab is one entry in the tab strip, ordered oldest first with the new
// tab affordance rendered client side.
type Tab struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type TabStripResponse struct {
	Tabs   []Tab  `json:"tabs"`
	Active string `json:"active"`
}

// StatusResponse carries everything the editor chrome re-renders after a
// mutation: the tab strip, the active markup and the live counters.
type StatusResponse struct {
	Tabs   []Tab  `json:"tabs"`
	Active string `json:"active"`
	Markup string `json:"markup"`
	Words  int    `json:"words"`
	Chars  int    `json:"chars"`
}

type CreateNoteRequest struct {
	Name string `json:"name"`
}

type SwitchNoteRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateContentRequest struct {
	Markup string `json:"markup"`
}

type CloseNoteRequest struct {
	Name string `json:"name" validate:"required"`
}

// CloseNoteResponse is returned when closing needs confirmation: the
// client must resolve the pending request before the note goes away.
type CloseNoteResponse struct {
	Closed         bool       `json:"closed"`
	ConfirmationId *uuid.UUID `json:"confirmation_id,omitempty"`
	Title          string     `json:"title,omitempty"`
	Message        string     `json:"message,omitempty"`
}

type ResolveConfirmationRequest struct {
	Id       uuid.UUID `json:"id" validate:"required"`
	Accepted bool      `json:"accepted"`
}

type TombstoneView struct {
	Name      string    `json:"name"`
	DeletedAt time.Time `json:"deleted_at"`
}
