package mindchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testProviderConfig(baseURL string) *ProviderConfig {
	return &ProviderConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		ProfileModel: "claude-sonnet-4-20250514",
		ChatModel:    "claude-sonnet-4-20250514",
		MaxTokens:    4000,
		Timeout:      5 * time.Second,
	}
}

// messagesHandler fakes the Messages API, returning the given text as
// the single content block.
func messagesHandler(t *testing.T, text string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version = %q", got)
		}
		resp := map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": text}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func profilesJSON() string {
	voices := make([]string, 0, 8)
	for _, a := range Archetypes() {
		voices = append(voices, fmt.Sprintf(`{"ref":%q,"name":%q,"catchphrases":["hm","ha"]}`, a.Ref, a.Title+" Prime"))
	}
	out := `{"voices":[`
	for i, v := range voices {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out + `]}`
}

func TestAnthropicProvider_GenerateProfiles(t *testing.T) {
	srv := httptest.NewServer(messagesHandler(t, "Here you go:\n"+profilesJSON()))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	profiles, err := p.GenerateProfiles(context.Background(), testOnboarding())
	if err != nil {
		t.Fatalf("GenerateProfiles: %v", err)
	}
	if len(profiles) != 8 {
		t.Fatalf("profiles = %d, want 8", len(profiles))
	}
	if profiles[0].Ref != "logic" || profiles[0].Name != "Logic Prime" {
		t.Fatalf("profiles[0] = %+v", profiles[0])
	}
	// The whole per-voice object rides along as the opaque persona.
	var persona map[string]interface{}
	if err := json.Unmarshal(profiles[0].Persona, &persona); err != nil {
		t.Fatalf("persona not JSON: %v", err)
	}
	if _, ok := persona["catchphrases"]; !ok {
		t.Fatal("persona lost the generation detail fields")
	}
}

func TestAnthropicProvider_GenerateReplies(t *testing.T) {
	body := `{"responses":[{"voice_ref":"logic","text":"think it through"},{"voice_ref":"alarm","text":"or panic"}]}`
	srv := httptest.NewServer(messagesHandler(t, body))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	replies, err := p.GenerateReplies(context.Background(), "what do I do", testProfiles(), testOnboarding(), nil)
	if err != nil {
		t.Fatalf("GenerateReplies: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("replies = %d, want 2", len(replies))
	}
	if replies[0].VoiceRef != "logic" || replies[1].VoiceRef != "alarm" {
		t.Fatalf("replies = %+v", replies)
	}
}

func TestAnthropicProvider_RepairsSloppyJSON(t *testing.T) {
	// Trailing comma: invalid JSON, but repairable.
	body := `{"responses":[{"voice_ref":"logic","text":"fine"},]}`
	srv := httptest.NewServer(messagesHandler(t, body))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	replies, err := p.GenerateReplies(context.Background(), "hm", testProfiles(), testOnboarding(), nil)
	if err != nil {
		t.Fatalf("GenerateReplies: %v", err)
	}
	if len(replies) != 1 || replies[0].Text != "fine" {
		t.Fatalf("replies = %+v", replies)
	}
}

func TestAnthropicProvider_NoJSONInOutput(t *testing.T) {
	srv := httptest.NewServer(messagesHandler(t, "sorry, I cannot help with that"))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	_, err := p.GenerateReplies(context.Background(), "hm", testProfiles(), testOnboarding(), nil)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if perr.Op != "generate_replies" {
		t.Fatalf("op = %q", perr.Op)
	}
}

func TestAnthropicProvider_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	_, err := p.GenerateProfiles(context.Background(), testOnboarding())
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
}

func TestAnthropicProvider_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel r.Context(); otherwise srv.Close
		// deadlocks waiting on this handler.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	p := NewAnthropicProvider(testProviderConfig(srv.URL), testConfig().Logger)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.GenerateProfiles(ctx, testOnboarding()); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

func TestExtractJSONBlob(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "prefix {\"a\":1} suffix", want: `{"a":1}`},
		{in: "no braces here", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := extractJSONBlob(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("extractJSONBlob(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("extractJSONBlob(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("extractJSONBlob(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
