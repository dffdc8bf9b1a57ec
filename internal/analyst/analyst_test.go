package analyst

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// stubModel captures the messages it receives and replays a canned answer,
// driving the streaming callback when one is configured.
type stubModel struct {
	answer   string
	messages []llms.MessageContent
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	s.messages = messages

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, word := range strings.SplitAfter(s.answer, " ") {
			if err := opts.StreamingFunc(ctx, []byte(word)); err != nil {
				return nil, err
			}
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.answer}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return s.answer, nil
}

func testFiles() []File {
	return []File{
		{Name: "pos_sales.csv", Data: []byte("Transaction_ID,Total\nTX-1,23.60\n")},
		{Name: "menu.csv", Data: []byte("Item_Name,Price\nBurger,12.50\n")},
	}
}

func TestAnalyzeIncludesFilesInContext(t *testing.T) {
	model := &stubModel{answer: "The top seller was the Burger."}
	a := New(model, testFiles())

	answer, err := a.Analyze(context.Background(), "What sold best?")
	require.NoError(t, err)
	assert.Equal(t, "The top seller was the Burger.", answer)

	require.Len(t, model.messages, 2)
	system := model.messages[0]
	assert.Equal(t, schema.ChatMessageTypeSystem, system.Role)

	text, ok := system.Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "restaurant operations analyst")
	assert.Contains(t, text.Text, "=== pos_sales.csv ===")
	assert.Contains(t, text.Text, "TX-1,23.60")
	assert.Contains(t, text.Text, "=== menu.csv ===")

	human := model.messages[1]
	assert.Equal(t, schema.ChatMessageTypeHuman, human.Role)
}

func TestStreamDeliversChunks(t *testing.T) {
	model := &stubModel{answer: "Sales were strong today."}
	a := New(model, testFiles())

	var chunks []string
	err := a.Stream(context.Background(), "How were sales?", func(ctx context.Context, chunk []byte) error {
		chunks = append(chunks, string(chunk))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Sales were strong today.", strings.Join(chunks, ""))
	assert.Greater(t, len(chunks), 1)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.csv"), []byte("Item_Name\nBurger\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos_sales.csv"), []byte("Transaction_ID\nTX-1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	files, err := LoadFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "menu.csv", files[0].Name)
	assert.Equal(t, "pos_sales.csv", files[1].Name)
	assert.Equal(t, []byte("Item_Name\nBurger\n"), files[0].Data)
}
