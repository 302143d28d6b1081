// Package gemini turns spreadsheet rows plus a user question into a grounded
// natural-language answer.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contratobot/core/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"log/slog"
)

const promptTemplate = `Você é um assistente especializado em análise de dados de planilhas.
Aqui estão os dados da planilha em formato JSON:
%s

Responda à seguinte pergunta do usuário com base nesses dados:
%s`

// Options configure the answer generator.
type Options struct {
	APIKey string
	Model  string
}

// Generator produces sanitized answers from a generative model.
type Generator struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGenerator builds the API client for the configured model.
func NewGenerator(ctx context.Context, opts Options) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: build client: %w", err)
	}

	logger.Gen.Info("generator ready",
		slog.String("event", "init"),
		slog.String("model", opts.Model),
	)

	return &Generator{
		client:    client,
		model:     client.GenerativeModel(opts.Model),
		modelName: opts.Model,
	}, nil
}

// Close releases the underlying API client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// Answer sends the rows and question to the model and returns the sanitized
// response text. Model failures and empty responses come back as errors so
// the caller can reply with a fallback message instead of crashing the
// update.
func (g *Generator) Answer(ctx context.Context, rows [][]string, question string) (string, error) {
	prompt, err := buildPrompt(rows, question)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Gen.Error("generate failed",
			slog.String("event", "generate.failed"),
			slog.String("model", g.modelName),
			slog.Int("prompt_chars", len(prompt)),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	answer := Sanitize(collectText(resp))
	if answer == "" {
		logger.Gen.Warn("empty answer",
			slog.String("event", "generate.empty"),
			slog.String("model", g.modelName),
			slog.Int("prompt_chars", len(prompt)),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return "", fmt.Errorf("gemini: model returned no usable text")
	}

	logger.Gen.Info("generate done",
		slog.String("event", "generate.done"),
		slog.String("model", g.modelName),
		slog.Int("prompt_chars", len(prompt)),
		slog.Int("answer_chars", len(answer)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	return answer, nil
}

func buildPrompt(rows [][]string, question string) (string, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("gemini: encode rows: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data, question), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
