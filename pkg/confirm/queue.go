package confirm

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrUnknownRequest is returned when a confirmation id is not pending:
// already resolved, expired, or never issued.
var ErrUnknownRequest = errors.New("unknown or expired confirmation request")

// Request is one pending user decision. Payload identifies the suspended
// operation (for note closes, the note name). Owner is the user the prompt
// was shown to; nobody else can resolve it.
type Request struct {
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Payload   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue holds pending confirmations by id so overlapping requests resolve
// independently instead of clobbering a single resolver slot. Unanswered
// requests expire after the TTL.
type Queue struct {
	pending *cache.Cache
}

func NewQueue(ttl time.Duration) *Queue {
	return &Queue{
		pending: cache.New(ttl, 10*time.Minute),
	}
}

// Push suspends an operation behind a new confirmation request owned by
// the given user.
func (q *Queue) Push(owner uuid.UUID, title, message, payload string) Request {
	req := Request{
		ID:        uuid.New(),
		Owner:     owner,
		Title:     title,
		Message:   message,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	q.pending.Set(req.ID.String(), req, cache.DefaultExpiration)
	return req
}

// Resolve pops a pending request. The caller decides what accept/decline
// means for the returned payload; a matched request is consumed either way.
// A resolve by anyone but the owner is answered as unknown and leaves the
// request pending, so a leaked id cannot act on another user's prompt.
func (q *Queue) Resolve(owner, id uuid.UUID) (Request, error) {
	x, found := q.pending.Get(id.String())
	if !found {
		return Request{}, ErrUnknownRequest
	}
	req := x.(Request)
	if req.Owner != owner {
		return Request{}, ErrUnknownRequest
	}
	q.pending.Delete(id.String())
	return req, nil
}

// Pending reports whether a request id is still awaiting a decision.
func (q *Queue) Pending(id uuid.UUID) bool {
	_, found := q.pending.Get(id.String())
	return found
}
