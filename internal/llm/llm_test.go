package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/laguz/internal/apperr"
)

func TestParseWordsPayload_OK(t *testing.T) {
	raw := `{"words":[{"basic":{"word":"ambience","phonetic":"ˈæmbiəns","partOfSpeech":"noun","motherLanguageTranslation":"氛围"},"tags":["new-words"],"definition":"the character of a place","examples":["The ambience was warm."]}]}`
	words, err := ParseWordsPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 {
		t.Fatalf("words = %d", len(words))
	}
	w := words[0]
	if w.Basic.Word != "ambience" || w.Basic.PartOfSpeech != "noun" {
		t.Errorf("basic = %+v", w.Basic)
	}
	if len(w.Examples) != 1 {
		t.Errorf("examples = %v", w.Examples)
	}
}

func TestParseWordsPayload_CodeFenced(t *testing.T) {
	raw := "```json\n{\"words\":[]}\n```"
	words, err := ParseWordsPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 0 {
		t.Errorf("words = %v", words)
	}
}

func TestParseWordsPayload_TruncatedJSON(t *testing.T) {
	_, err := ParseWordsPayload(`{"words": [`)
	if !errors.Is(err, apperr.ErrMalformedModelOutput) {
		t.Errorf("err = %v, want ErrMalformedModelOutput", err)
	}
}

func TestParseWordsPayload_MissingWordsArray(t *testing.T) {
	_, err := ParseWordsPayload(`{"vocabulary": []}`)
	if !errors.Is(err, apperr.ErrMalformedModelOutput) {
		t.Errorf("err = %v, want ErrMalformedModelOutput", err)
	}
}

func TestClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response format = %+v", req.ResponseFormat)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"words":[]}`}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", 0, time.Second)
	out, err := c.Complete(context.Background(), "sys", "user", FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"words":[]}` {
		t.Errorf("out = %q", out)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body: the server only notices the client's timeout
		// disconnect (and cancels r.Context()) once the request body has
		// been consumed; without this, srv.Close blocks forever.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "m", 0, 50*time.Millisecond)
	_, err := c.Complete(context.Background(), "s", "u", FormatText)
	if err == nil {
		t.Error("expected timeout error")
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "m", 0, time.Second)
	_, err := c.Complete(context.Background(), "s", "u", FormatText)
	if err == nil {
		t.Error("expected API error")
	}
}
