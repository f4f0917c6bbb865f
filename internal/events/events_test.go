// Event publishing tests
//
// These tests verify that:
// - Events are published as JSON on "<prefix>.<type>" subjects
// - Publishing failures never reach the caller through Emit
package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestAC900_Publish_UsesTypedSubjectAndJSONEnvelope(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "media.test")

	e := New(TypeSearch)
	e.Query = "ocean"
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fc.subjects) != 1 || fc.subjects[0] != "media.test.search" {
		t.Fatalf("subject = %v, want media.test.search", fc.subjects)
	}
	var got Event
	if err := json.Unmarshal(fc.payloads[0], &got); err != nil {
		t.Fatalf("payload should be JSON: %v", err)
	}
	if got.Query != "ocean" || got.Source != Source || got.Type != TypeSearch {
		t.Errorf("unexpected envelope: %+v", got)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("event ID should be a uuid, got %q", got.ID)
	}
}

func TestPublish_FillsMissingEnvelopeFields(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "")

	if err := p.Publish(context.Background(), Event{Type: TypeDownload}); err != nil {
		t.Fatal(err)
	}
	if fc.subjects[0] != DefaultSubject+".download" {
		t.Errorf("default prefix should be used, got %s", fc.subjects[0])
	}
	var got Event
	_ = json.Unmarshal(fc.payloads[0], &got)
	if got.ID == "" || got.Timestamp.IsZero() {
		t.Errorf("ID and timestamp should be filled: %+v", got)
	}
}

func TestPublish_CancelledContext(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Publish(ctx, New(TypeSearch)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context should fail, got %v", err)
	}
	if len(fc.subjects) != 0 {
		t.Error("nothing should be published after cancel")
	}
}

func TestAC901_Emit_SwallowsPublishErrors(t *testing.T) {
	fc := &fakeConn{err: errors.New("no responders")}
	p := newNATSPublisher(fc, "")

	Emit(context.Background(), p, New(TypeFavoriteToggled))
	Emit(context.Background(), nil, New(TypeFavoriteToggled))
	Emit(context.Background(), NopPublisher{}, New(TypeThemeChanged))
}

func TestClose_ClosesConnection(t *testing.T) {
	fc := &fakeConn{}
	newNATSPublisher(fc, "").Close()
	if !fc.closed {
		t.Error("Close should close the nats connection")
	}
}
