package mindchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
	anthropicMaxErrorBody   = 4096
)

// AnthropicProvider implements ResponseProvider against the Anthropic
// Messages API.
type AnthropicProvider struct {
	cfg    *ProviderConfig
	client *http.Client
	log    zerolog.Logger
}

var _ ResponseProvider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a provider from the given config.
func NewAnthropicProvider(cfg *ProviderConfig, log zerolog.Logger) *AnthropicProvider {
	return &AnthropicProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "anthropic").Logger(),
	}
}

// ──────────────────────────────────────────────
// Messages API wire types
// ──────────────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ──────────────────────────────────────────────
// ResponseProvider
// ──────────────────────────────────────────────

// GenerateProfiles asks the model to personalize the eight archetypes
// for the given user data.
func (p *AnthropicProvider) GenerateProfiles(ctx context.Context, data OnboardingData) ([]VoiceProfile, error) {
	req := anthropicRequest{
		Model:     resolveModel(p.cfg.ProfileModel),
		MaxTokens: p.cfg.MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildProfilePrompt(data)},
		},
	}
	text, err := p.complete(ctx, req)
	if err != nil {
		return nil, providerErr("generate_profiles", "request failed", err)
	}

	var payload struct {
		Voices []struct {
			Ref  string `json:"ref"`
			Name string `json:"name"`
		} `json:"voices"`
	}
	blob, err := extractJSONBlob(text)
	if err != nil {
		return nil, providerErr("generate_profiles", "no JSON in model output", err)
	}
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, providerErr("generate_profiles", "malformed JSON in model output", err)
	}

	// Keep the full per-voice object as the opaque persona blob; only
	// ref and name are lifted out.
	var rawPayload struct {
		Voices []json.RawMessage `json:"voices"`
	}
	if err := json.Unmarshal([]byte(blob), &rawPayload); err != nil {
		return nil, providerErr("generate_profiles", "malformed JSON in model output", err)
	}

	profiles := make([]VoiceProfile, 0, len(payload.Voices))
	for i, v := range payload.Voices {
		var persona json.RawMessage
		if i < len(rawPayload.Voices) {
			persona = rawPayload.Voices[i]
		}
		profiles = append(profiles, VoiceProfile{Ref: v.Ref, Name: v.Name, Persona: persona})
	}
	p.log.Debug().Int("voices", len(profiles)).Msg("profiles generated")
	return profiles, nil
}

// GenerateReplies asks the model for one reply batch to the user's
// message.
func (p *AnthropicProvider) GenerateReplies(ctx context.Context, userText string, voices []VoiceProfile, data OnboardingData, history []MessageEntry) ([]VoiceReply, error) {
	req := anthropicRequest{
		Model:     resolveModel(p.cfg.ChatModel),
		MaxTokens: p.cfg.MaxTokens,
		System:    buildChatSystemPrompt(userText, voices, data),
		Messages: []anthropicMessage{
			{Role: "user", Content: buildChatUserContent(userText, voices, history)},
		},
	}
	text, err := p.complete(ctx, req)
	if err != nil {
		return nil, providerErr("generate_replies", "request failed", err)
	}

	var payload struct {
		Responses []VoiceReply `json:"responses"`
	}
	blob, err := extractJSONBlob(text)
	if err != nil {
		return nil, providerErr("generate_replies", "no JSON in model output", err)
	}
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, providerErr("generate_replies", "malformed JSON in model output", err)
	}
	if payload.Responses == nil {
		return nil, providerErr("generate_replies", "model output missing responses array", nil)
	}
	p.log.Debug().Int("replies", len(payload.Responses)).Msg("reply batch generated")
	return payload.Responses, nil
}

// complete POSTs one Messages request and returns the first text block.
func (p *AnthropicProvider) complete(ctx context.Context, reqBody anthropicRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	baseURL := p.cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicDefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	if p.cfg.Debug {
		p.log.Debug().Str("model", reqBody.Model).Int("bytes", len(payload)).Msg("calling messages API")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		limited := io.LimitReader(resp.Body, anthropicMaxErrorBody)
		body, _ := io.ReadAll(limited)
		return "", fmt.Errorf("messages API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" || block.Type == "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("response has no text content block")
}

// extractJSONBlob pulls the first {...} object out of model output,
// repairing near-JSON (trailing commas, single quotes, unquoted keys)
// when the strict slice does not parse.
func extractJSONBlob(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no object delimiters found")
	}
	blob := text[start : end+1]
	if json.Valid([]byte(blob)) {
		return blob, nil
	}
	repaired, err := jsonrepair.JSONRepair(blob)
	if err != nil {
		return "", fmt.Errorf("repair failed: %w", err)
	}
	return repaired, nil
}
