package sinks

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/webmapper-go/webmapper/internal/progress"
)

func testEvent(stage progress.Stage) progress.Event {
	return progress.Event{
		RunID: uuid.New(),
		TS:    time.Now().UTC(),
		Stage: stage,
		URL:   "https://www.site.com/page",
		Depth: 1,
	}
}

func TestLogSinkVisit(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))

	sink.Consume(testEvent(progress.StagePageVisited))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "visiting page", entries[0].Message)
	assert.Equal(t, "https://www.site.com/page", entries[0].ContextMap()["url"])
}

func TestLogSinkFetchError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))

	evt := testEvent(progress.StageFetchError)
	evt.Note = errors.New("boom").Error()
	sink.Consume(evt)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "fetch failed", entries[0].Message)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestLogSinkNilLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NewLogSink(nil).Consume(testEvent(progress.StagePageVisited))
	})
}

func TestPrometheusSinkCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	sink, err := NewPrometheusSink(reg)
	require.NoError(t, err)

	sink.Consume(testEvent(progress.StagePageVisited))
	sink.Consume(testEvent(progress.StagePageVisited))
	sink.Consume(testEvent(progress.StageFetchError))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.pagesVisited))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.fetchErrors))
}

func TestPrometheusSinkDoubleRegister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewPrometheusSink(reg)
	require.NoError(t, err)

	_, err = NewPrometheusSink(reg)
	require.Error(t, err)
}
