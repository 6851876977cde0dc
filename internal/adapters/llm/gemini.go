// Package llm turns context packages into short natural-language answers.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
)

const answerTimeout = 10 * time.Second

const instruction = "You are an accessibility-focused mobility assistant. " +
	"Answer concisely how to reach the destination, citing links from the context. " +
	"Include leave-by time if present. If any outages/uncertainties exist, state them briefly."

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnswerer asks Gemini for an answer and degrades to FallbackAnswer on any failure.
type GeminiAnswerer struct {
	models contentGenerator
	model  string
}

func NewGeminiAnswerer(ctx context.Context, apiKey, model string) (*GeminiAnswerer, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiAnswerer{models: cli.Models, model: model}, nil
}

func (g *GeminiAnswerer) Answer(ctx context.Context, question string, pkg *domain.ContextPackage) string {
	text, err := g.generate(ctx, question, pkg)
	if err != nil {
		log.Printf("req_id=%s gemini answer failed, using context-only answer: %v", obs.RequestID(ctx), err)
		return FallbackAnswer(pkg)
	}
	if text == "" {
		return FallbackAnswer(pkg)
	}
	return text
}

func (g *GeminiAnswerer) generate(ctx context.Context, question string, pkg *domain.ContextPackage) (_ string, err error) {
	defer obs.Time(ctx, "llm.gemini.Answer")(&err)

	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	pkgJSON, err := json.Marshal(pkg)
	if err != nil {
		return "", fmt.Errorf("marshal context package: %w", err)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: instruction},
			{Text: "Question: " + question},
			{Text: "Context package JSON:"},
			{Text: string(pkgJSON)},
		},
	}}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	texts := make([]string, 0, len(resp.Candidates[0].Content.Parts))
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}
