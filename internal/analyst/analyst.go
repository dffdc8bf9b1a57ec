// Package analyst answers free-form questions about the restaurant's data by
// handing the raw source files to a language model as analysis context.
package analyst

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const systemPrompt = `You are a restaurant operations analyst. You are given the raw CSV exports
from a single day of service: point-of-sale tickets, the menu catalog, the
loyalty CRM, the inventory ledger, the staff roster, promotion results,
customer reviews, reservations and the accounting summary. Answer questions
using only these files. Cite the file a figure comes from, show your
arithmetic for derived numbers, and say plainly when the data cannot answer
the question.`

// File is one raw source file given to the model as opaque bytes.
type File struct {
	Name string
	Data []byte
}

// LoadFiles reads every CSV file in dir, without parsing it. The analyst
// hands the model the same bytes the analysis pipeline reads.
func LoadFiles(dir string) ([]File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, File{Name: filepath.Base(path), Data: data})
	}
	return files, nil
}

// Analyst answers questions over a fixed set of source files.
type Analyst struct {
	model llms.Model
	files []File
}

// New creates an analyst over the given model and source files.
func New(model llms.Model, files []File) *Analyst {
	return &Analyst{model: model, files: files}
}

// NewOpenAI creates an analyst backed by the OpenAI chat API. The API key
// comes from the OPENAI_API_KEY environment variable.
func NewOpenAI(modelName string, files []File) (*Analyst, error) {
	client, err := openai.New(openai.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return New(client, files), nil
}

// Stream sends a question to the model and delivers the answer through fn
// chunk by chunk as it is generated.
func (a *Analyst) Stream(ctx context.Context, query string, fn func(ctx context.Context, chunk []byte) error) error {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.context()),
		llms.TextParts(schema.ChatMessageTypeHuman, query),
	}

	_, err := a.model.GenerateContent(ctx, messages, llms.WithStreamingFunc(fn))
	if err != nil {
		return fmt.Errorf("failed to generate analysis: %w", err)
	}
	return nil
}

// Analyze sends a question to the model and returns the complete answer.
func (a *Analyst) Analyze(ctx context.Context, query string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.context()),
		llms.TextParts(schema.ChatMessageTypeHuman, query),
	}

	response, err := a.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return response.Choices[0].Content, nil
}

// context builds the system message: the analyst instructions followed by
// every source file, delimited by name.
func (a *Analyst) context() string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	for _, f := range a.files {
		b.WriteString("\n\n=== ")
		b.WriteString(f.Name)
		b.WriteString(" ===\n")
		b.Write(f.Data)
	}
	return b.String()
}
