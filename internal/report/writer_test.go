package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFileWriterWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer, err := NewFileWriter(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	rep := Report{
		RunID:      "0192a1b2-0000-7000-8000-000000000000",
		Domain:     "https://www.site.com",
		StartedAt:  time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		DurationMs: 1234,
		Visited:    3,
		Links:      []string{"https://www.site.com/a", "https://www.site.com/b"},
	}

	listPath, err := writer.Write(context.Background(), rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "www.site.com.txt"), listPath)

	body, err := os.ReadFile(listPath)
	require.NoError(t, err)
	assert.Equal(t, "https://www.site.com/a\nhttps://www.site.com/b\n", string(body))

	meta, err := os.ReadFile(filepath.Join(dir, "www.site.com.json"))
	require.NoError(t, err)
	var got Report
	require.NoError(t, json.Unmarshal(meta, &got))
	assert.Equal(t, rep, got)
}

func TestFileWriterEmptyRun(t *testing.T) {
	t.Parallel()

	writer, err := NewFileWriter(t.TempDir(), nil)
	require.NoError(t, err)

	listPath, err := writer.Write(context.Background(), Report{Domain: "https://www.site.com"})
	require.NoError(t, err)

	body, err := os.ReadFile(listPath)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFileWriterCanceledContext(t *testing.T) {
	t.Parallel()

	writer, err := NewFileWriter(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = writer.Write(ctx, Report{Domain: "https://www.site.com"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "www.site.com", fileStem("https://www.site.com"))
	assert.Equal(t, "site.com_8080", fileStem("http://site.com:8080"))
	assert.Equal(t, "sitemap", fileStem("not a url"))
}
