// Package dispatcher turns a typed phrase into dictionary suggestions and
// presentable launcher items.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/pricofy/dictionary-lookup/internal/config"
	"github.com/pricofy/dictionary-lookup/internal/domain"
	"github.com/pricofy/dictionary-lookup/internal/parser"
	"github.com/pricofy/dictionary-lookup/internal/router"
)

// Launcher-facing constants.
const (
	Trigger    = "lin "
	Synopsis   = "<lin phrase>"
	PluginName = "Linguee"

	promptID      = "lin"
	promptSubtext = "Enter a word to translate"
)

var (
	// ErrEmptyQuery is returned by FetchSuggestions for a blank phrase.
	ErrEmptyQuery = errors.New("empty query")
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Dispatcher fetches suggestions for one configured language pair. It holds
// no per-query state and is safe for concurrent use.
type Dispatcher struct {
	cfg        config.LingueeConfig
	langPair   string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Dispatcher with an HTTP client using cfg.Timeout.
func New(cfg config.LingueeConfig, logger *slog.Logger) (*Dispatcher, error) {
	return NewWithClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithClient creates a Dispatcher with a caller-supplied HTTP client.
func NewWithClient(cfg config.LingueeConfig, client *http.Client, logger *slog.Logger) (*Dispatcher, error) {
	langPair, err := router.Resolve(cfg.SourceLang, cfg.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}

	return &Dispatcher{
		cfg:        cfg,
		langPair:   langPair,
		httpClient: client,
		log:        logger.With("component", "dispatcher", "lang_pair", langPair),
	}, nil
}

// FetchSuggestions waits out the debounce delay, queries the site and parses
// the response. Results keep the parser's order. Failures are not retried.
func (d *Dispatcher) FetchSuggestions(ctx context.Context, phrase string) ([]domain.SearchResult, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, ErrEmptyQuery
	}

	if err := d.debounce(ctx); err != nil {
		return nil, err
	}

	reqURL := d.SearchURL(phrase)
	d.log.DebugContext(ctx, "search request", slog.String("phrase", phrase), slog.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: create request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dispatcher: %w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := d.readBody(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: read body: %w", err)
	}

	results, err := parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}

	d.log.DebugContext(ctx, "search response",
		slog.String("phrase", phrase),
		slog.Int("status", resp.StatusCode),
		slog.Int("results", len(results)),
	)

	return results, nil
}

// Query returns presentable items for phrase. A blank phrase yields the
// single prompt item and performs no request.
func (d *Dispatcher) Query(ctx context.Context, phrase string) ([]domain.Item, error) {
	if strings.TrimSpace(phrase) == "" {
		return []domain.Item{EmptyPrompt()}, nil
	}

	results, err := d.FetchSuggestions(ctx, phrase)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(results))
	for _, r := range results {
		items = append(items, d.Present(r))
	}
	return items, nil
}

// Present wraps a result into an item with open and copy actions on its
// lookup URL.
func (d *Dispatcher) Present(r domain.SearchResult) domain.Item {
	lookup := d.LookupURL(r.Word)
	return domain.Item{
		ID:              r.Word,
		Text:            r.Word,
		Subtext:         strings.Join(r.Translations, ", "),
		InputActionText: r.Word,
		Actions: []domain.Action{
			{Name: "open", Description: "look up word on linguee", Kind: domain.ActionOpenURL, URL: lookup},
			{Name: "copy", Description: "Copy url to clipboard", Kind: domain.ActionCopyClipboard, URL: lookup},
		},
	}
}

// EmptyPrompt is the item shown while no phrase has been typed.
func EmptyPrompt() domain.Item {
	return domain.Item{
		ID:      promptID,
		Text:    PluginName,
		Subtext: promptSubtext,
	}
}

// LookupURL is the browse URL for word. The word is inserted verbatim.
func (d *Dispatcher) LookupURL(word string) string {
	return fmt.Sprintf("%s/%s/search?source=auto&query=%s",
		strings.TrimRight(d.cfg.BrowseURL, "/"), d.langPair, word)
}

// SearchURL is the autocompletion endpoint queried for phrase.
func (d *Dispatcher) SearchURL(phrase string) string {
	q := url.Values{}
	q.Set("qe", phrase)
	q.Set("source", "auto")
	q.Set("cw", strconv.Itoa(d.cfg.ResultWidth))
	q.Set("ch", strconv.Itoa(d.cfg.ResultHeight))

	return strings.TrimRight(d.cfg.SearchURL, "/") + "/" + d.langPair + "/search?" + q.Encode()
}

// debounce blocks for the configured delay so rapid keystrokes settle.
func (d *Dispatcher) debounce(ctx context.Context) error {
	if d.cfg.Debounce <= 0 {
		return nil
	}

	t := time.NewTimer(d.cfg.Debounce)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// readBody returns the body as UTF-8 text, decoding from the charset named
// in Content-Type. Unknown charsets are read as-is.
func (d *Dispatcher) readBody(ctx context.Context, resp *http.Response) (string, error) {
	var r io.Reader = resp.Body

	if label := charsetOf(resp.Header.Get("Content-Type")); label != "" {
		enc, err := htmlindex.Get(label)
		if err != nil {
			d.log.WarnContext(ctx, "unknown response charset", slog.String("charset", label))
		} else {
			r = enc.NewDecoder().Reader(r)
		}
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
