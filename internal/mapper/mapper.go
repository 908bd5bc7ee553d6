// Package mapper implements the depth-bounded, same-domain crawl engine.
//
// A Mapper is anchored to a single seed domain and discovers every page
// reachable from it through relative links, up to a maximum link-following
// depth, waiting a fixed delay between followed links. Fetching and link
// extraction are injected so the traversal logic carries no transport or
// parser dependency.
package mapper

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	iduuid "github.com/webmapper-go/webmapper/internal/id/uuid"
	"github.com/webmapper-go/webmapper/internal/progress"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultMaxDepth  = 2
	DefaultRateLimit = 500 * time.Millisecond
)

// skipExtensions lists path suffixes that disqualify a URL from crawling.
var skipExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg"}

// Mapper crawls a single domain and accumulates the visited and discovered
// URL sets. It is not safe for concurrent use; a Mapper runs one crawl.
type Mapper struct {
	domain     string
	baseURL    *url.URL
	domainHost string
	maxDepth   int
	rateLimit  time.Duration

	fetcher   Fetcher
	extractor LinkExtractor
	emitter   progress.Emitter
	logger    *zap.Logger
	pause     pauseController
	runID     uuid.UUID

	visited    map[string]struct{}
	discovered map[string]struct{}
}

// Option customizes a Mapper at construction time.
type Option func(*Mapper)

// WithMaxDepth overrides the maximum link-following depth.
func WithMaxDepth(depth int) Option {
	return func(m *Mapper) { m.maxDepth = depth }
}

// WithRateLimit overrides the delay applied after each followed link. Zero
// disables throttling.
func WithRateLimit(delay time.Duration) Option {
	return func(m *Mapper) { m.rateLimit = delay }
}

// WithFetcher sets the page fetcher.
func WithFetcher(f Fetcher) Option {
	return func(m *Mapper) { m.fetcher = f }
}

// WithExtractor sets the raw link extractor.
func WithExtractor(e LinkExtractor) Option {
	return func(m *Mapper) { m.extractor = e }
}

// WithProgress sets the sink receiving page-visited and fetch-error events.
func WithProgress(emitter progress.Emitter) Option {
	return func(m *Mapper) {
		if emitter != nil {
			m.emitter = emitter
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRunID pins the run identifier instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(m *Mapper) { m.runID = id }
}

// New validates the seed domain and builds a Mapper. The domain must match
// DomainPattern; a trailing slash is stripped from the stored form. New
// returns ErrInvalidDomain for an unacceptable seed and a KindInvalidConfig
// error for negative depth or rate limit values.
func New(domain string, opts ...Option) (*Mapper, error) {
	if !DomainPattern.MatchString(domain) {
		return nil, ErrInvalidDomain
	}

	m := &Mapper{
		domain:     strings.TrimSuffix(domain, "/"),
		maxDepth:   DefaultMaxDepth,
		rateLimit:  DefaultRateLimit,
		emitter:    progress.NopEmitter{},
		logger:     zap.NewNop(),
		pause:      timerPauseController{},
		visited:    make(map[string]struct{}),
		discovered: make(map[string]struct{}),
	}

	base, err := url.Parse(m.domain)
	if err != nil {
		return nil, fmt.Errorf("parse domain: %w", err)
	}
	m.baseURL = base
	m.domainHost = base.Host

	for _, opt := range opts {
		opt(m)
	}

	if m.maxDepth < 0 {
		return nil, errInvalidConfig("max depth must be >= 0")
	}
	if m.rateLimit < 0 {
		return nil, errInvalidConfig("rate limit must be >= 0")
	}
	if m.runID == uuid.Nil {
		id, err := iduuid.NewGenerator().NewRawID()
		if err != nil {
			return nil, fmt.Errorf("generate run id: %w", err)
		}
		m.runID = id
	}

	return m, nil
}

// Domain returns the normalized seed domain.
func (m *Mapper) Domain() string { return m.domain }

// RunID returns the identifier attached to this crawl's progress events.
func (m *Mapper) RunID() uuid.UUID { return m.runID }

// Visited returns a copy of the set of URLs a fetch was attempted for.
func (m *Mapper) Visited() []string {
	out := make([]string, 0, len(m.visited))
	for u := range m.visited {
		out = append(out, u)
	}
	return out
}

// Discovered returns a copy of the set of in-domain links found so far.
func (m *Mapper) Discovered() []string {
	out := make([]string, 0, len(m.discovered))
	for u := range m.discovered {
		out = append(out, u)
	}
	return out
}

// MapSite crawls from the seed domain and returns the discovered links as a
// lexicographically sorted snapshot. When ctx ends early the snapshot holds
// whatever was discovered up to that point, alongside the context error.
func (m *Mapper) MapSite(ctx context.Context) ([]string, error) {
	start := time.Now()
	m.logger.Info("starting site map",
		zap.String("run_id", m.runID.String()),
		zap.String("domain", m.domain),
		zap.Int("max_depth", m.maxDepth),
		zap.Duration("rate_limit", m.rateLimit),
	)

	err := m.Crawl(ctx, m.domain, 0)

	links := m.Discovered()
	sort.Strings(links)

	m.logger.Info("site map finished",
		zap.String("run_id", m.runID.String()),
		zap.Int("visited", len(m.visited)),
		zap.Int("discovered", len(links)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return links, err
}

// frame tracks the remaining candidate links of one page on the traversal
// stack. depth is the depth of the page the links came from.
type frame struct {
	links []string
	depth int
	next  int
	root  bool
}

// Crawl runs the depth-first traversal step starting at the given URL and
// depth. Depth is checked before the visited set, so a URL reached past the
// limit is never marked visited. The visited set is the sole guard against
// link cycles. The only error Crawl returns is a context or configuration
// error; fetch failures degrade to an empty link set for that page.
func (m *Mapper) Crawl(ctx context.Context, rawURL string, depth int) error {
	if m.fetcher == nil || m.extractor == nil {
		return errInvalidConfig("fetcher and extractor must be configured")
	}

	root := m.enterPage(ctx, rawURL, depth)
	if root == nil {
		return ctx.Err()
	}
	root.root = true

	stack := []*frame{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.links) {
			stack = stack[:len(stack)-1]
			// The delay for the edge that led here is paid after the
			// whole subtree completes, not per fetch.
			if !top.root {
				m.pause.Pause(ctx, m.rateLimit)
			}
			continue
		}

		link := top.links[top.next]
		top.next++

		absolute, ok := m.resolveLink(link)
		if !ok || !m.isEligible(absolute) {
			continue
		}
		if _, seen := m.visited[absolute]; seen {
			continue
		}
		m.discovered[absolute] = struct{}{}

		if child := m.enterPage(ctx, absolute, top.depth+1); child != nil {
			stack = append(stack, child)
		} else {
			// Depth-exhausted child: the edge still pays its delay.
			m.pause.Pause(ctx, m.rateLimit)
		}
	}
	return ctx.Err()
}

// enterPage applies the terminal guards, marks the URL visited, fetches it
// and returns a frame holding its cleaned candidate links. It returns nil
// when the traversal must not descend (depth exhausted or already visited).
func (m *Mapper) enterPage(ctx context.Context, rawURL string, depth int) *frame {
	if depth > m.maxDepth {
		return nil
	}
	if _, seen := m.visited[rawURL]; seen {
		return nil
	}
	m.visited[rawURL] = struct{}{}
	m.emitter.Emit(progress.Event{
		RunID: m.runID,
		TS:    time.Now().UTC(),
		Stage: progress.StagePageVisited,
		URL:   rawURL,
		Depth: depth,
	})

	var raw []string
	page, err := m.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		m.emitter.Emit(progress.Event{
			RunID: m.runID,
			TS:    time.Now().UTC(),
			Stage: progress.StageFetchError,
			URL:   rawURL,
			Depth: depth,
			Note:  err.Error(),
		})
	} else {
		raw = m.extractor.ExtractLinks(page.Body)
	}

	return &frame{links: cleanLinks(raw), depth: depth}
}

// cleanLinks keeps only non-empty, path-relative links, collapsing exact
// duplicates while preserving first-occurrence order.
func cleanLinks(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, link := range links {
		if link == "" || !LinkPattern.MatchString(link) {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, link)
	}
	return out
}

// resolveLink resolves a relative link against the seed domain.
func (m *Mapper) resolveLink(link string) (string, bool) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	return m.baseURL.ResolveReference(ref).String(), true
}

// isEligible reports whether an absolute URL belongs to the crawl: its
// host:port must equal the seed's (the scheme is deliberately ignored so
// http and https pages of the same host count as one site) and its path
// must not end in a known non-content extension.
func (m *Mapper) isEligible(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != m.domainHost {
		return false
	}
	for _, ext := range skipExtensions {
		if strings.HasSuffix(u.Path, ext) {
			return false
		}
	}
	return true
}
