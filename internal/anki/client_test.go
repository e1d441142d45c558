package anki

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/laguz/internal/apperr"
)

func sinkServer(t *testing.T, handler func(req request) response) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(handler(req))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPing_OK(t *testing.T) {
	srv := sinkServer(t, func(req request) response {
		if req.Action != "version" || req.Version != protocolVersion {
			t.Errorf("unexpected request: %+v", req)
		}
		return response{Result: json.RawMessage("6")}
	})
	c := NewClient(srv.URL, true, time.Second)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("ping failed: %v", err)
	}
}

func TestPing_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", true, 200*time.Millisecond)
	err := c.Ping(context.Background())
	if !errors.Is(err, apperr.ErrSinkUnavailable) {
		t.Errorf("err = %v, want ErrSinkUnavailable", err)
	}
}

func TestAddNote_Payload(t *testing.T) {
	var got request
	srv := sinkServer(t, func(req request) response {
		got = req
		return response{}
	})
	c := NewClient(srv.URL, true, time.Second)
	if err := c.AddNote(context.Background(), "front html", "back html", "English Vocabulary"); err != nil {
		t.Fatal(err)
	}
	if got.Action != "addNote" {
		t.Errorf("action = %q", got.Action)
	}
	raw, _ := json.Marshal(got.Params)
	var params noteParams
	_ = json.Unmarshal(raw, &params)
	if params.Note.DeckName != "English Vocabulary" {
		t.Errorf("deck = %q", params.Note.DeckName)
	}
	if params.Note.ModelName != "Basic" {
		t.Errorf("model = %q", params.Note.ModelName)
	}
	if params.Note.Fields.Front != "front html" || params.Note.Fields.Back != "back html" {
		t.Errorf("fields = %+v", params.Note.Fields)
	}
	if !params.Note.Options.AllowDuplicate {
		t.Error("allowDuplicate not propagated")
	}
}

func TestAddNote_DuplicateReported(t *testing.T) {
	msg := "cannot create note because it is a duplicate"
	srv := sinkServer(t, func(req request) response {
		return response{Error: &msg}
	})
	c := NewClient(srv.URL, false, time.Second)
	err := c.AddNote(context.Background(), "f", "b", "d")
	if !errors.Is(err, apperr.ErrDuplicateCard) {
		t.Errorf("err = %v, want ErrDuplicateCard", err)
	}
}

func TestAddNote_SinkError(t *testing.T) {
	msg := "deck was not found"
	srv := sinkServer(t, func(req request) response {
		return response{Error: &msg}
	})
	c := NewClient(srv.URL, false, time.Second)
	err := c.AddNote(context.Background(), "f", "b", "d")
	if err == nil || errors.Is(err, apperr.ErrDuplicateCard) {
		t.Errorf("err = %v, want plain sink error", err)
	}
}
