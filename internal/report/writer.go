// Package report writes the result of a crawl run to disk.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Report holds everything worth persisting about one finished run.
type Report struct {
	RunID      string    `json:"run_id"`
	Domain     string    `json:"domain"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Visited    int       `json:"visited"`
	Links      []string  `json:"links"`
}

// FileWriter saves the sorted link list and a metadata sidecar under a root
// directory.
type FileWriter struct {
	root   string
	logger *zap.Logger
}

// NewFileWriter returns a writer rooted at dir.
func NewFileWriter(root string, logger *zap.Logger) (*FileWriter, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create report dir %s: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWriter{root: root, logger: logger}, nil
}

// Write stores one URL per line in <host>.txt plus a <host>.json sidecar
// with the run metadata, and returns the text file path.
func (w *FileWriter) Write(ctx context.Context, rep Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}

	base := filepath.Join(w.root, fileStem(rep.Domain))
	listPath := base + ".txt"
	body := strings.Join(rep.Links, "\n")
	if len(rep.Links) > 0 {
		body += "\n"
	}
	if err := os.WriteFile(listPath, []byte(body), 0o600); err != nil {
		return "", fmt.Errorf("write link list %s: %w", listPath, err)
	}

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	metaPath := base + ".json"
	if err := os.WriteFile(metaPath, payload, 0o600); err != nil {
		return "", fmt.Errorf("write report meta %s: %w", metaPath, err)
	}

	w.logger.Info("report written",
		zap.String("list", listPath),
		zap.String("meta", metaPath),
		zap.Int("links", len(rep.Links)),
	)
	return listPath, nil
}

// fileStem derives a filesystem-safe name from the crawled domain.
func fileStem(domain string) string {
	if u, err := url.Parse(domain); err == nil && u.Host != "" {
		return strings.ReplaceAll(u.Host, ":", "_")
	}
	return "sitemap"
}
