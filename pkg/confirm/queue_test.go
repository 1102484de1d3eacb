package confirm

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPushAndResolve(t *testing.T) {
	q := NewQueue(time.Minute)
	owner := uuid.New()

	req := q.Push(owner, "Close note?", "note still has content", `{"note":"todo"}`)
	if req.ID == uuid.Nil {
		t.Fatal("Push assigned no id")
	}
	if !q.Pending(req.ID) {
		t.Fatal("request should be pending after Push")
	}

	got, err := q.Resolve(owner, req.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Payload != `{"note":"todo"}` {
		t.Errorf("Payload = %q, want %q", got.Payload, `{"note":"todo"}`)
	}
	if got.Title != "Close note?" {
		t.Errorf("Title = %q, want %q", got.Title, "Close note?")
	}
}

func TestResolveConsumesRequest(t *testing.T) {
	q := NewQueue(time.Minute)
	owner := uuid.New()
	req := q.Push(owner, "t", "m", "p")

	if _, err := q.Resolve(owner, req.ID); err != nil {
		t.Fatalf("first Resolve returned error: %v", err)
	}
	if q.Pending(req.ID) {
		t.Error("request still pending after Resolve")
	}
	if _, err := q.Resolve(owner, req.ID); err != ErrUnknownRequest {
		t.Errorf("second Resolve error = %v, want ErrUnknownRequest", err)
	}
}

func TestResolveUnknownID(t *testing.T) {
	q := NewQueue(time.Minute)
	if _, err := q.Resolve(uuid.New(), uuid.New()); err != ErrUnknownRequest {
		t.Errorf("error = %v, want ErrUnknownRequest", err)
	}
}

func TestResolveByAnotherUserRejected(t *testing.T) {
	q := NewQueue(time.Minute)
	owner := uuid.New()
	req := q.Push(owner, "t", "m", "p")

	if _, err := q.Resolve(uuid.New(), req.ID); err != ErrUnknownRequest {
		t.Errorf("error = %v, want ErrUnknownRequest", err)
	}
	// The owner's prompt stays answerable.
	if !q.Pending(req.ID) {
		t.Fatal("foreign resolve consumed the request")
	}
	if _, err := q.Resolve(owner, req.ID); err != nil {
		t.Errorf("owner Resolve returned error: %v", err)
	}
}

func TestOverlappingRequestsResolveIndependently(t *testing.T) {
	q := NewQueue(time.Minute)
	owner := uuid.New()
	a := q.Push(owner, "t", "m", "a")
	b := q.Push(owner, "t", "m", "b")

	got, err := q.Resolve(owner, b.ID)
	if err != nil {
		t.Fatalf("Resolve(b) returned error: %v", err)
	}
	if got.Payload != "b" {
		t.Errorf("Payload = %q, want %q", got.Payload, "b")
	}
	if !q.Pending(a.ID) {
		t.Error("resolving b should not consume a")
	}
}
