package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

// CorpusProvider supplies the text the extractor reads brands from.
type CorpusProvider interface {
	Gather(ctx context.Context, category, window string) (string, error)
}

// StaticCorpus is a fixed, pre-fetched corpus.
type StaticCorpus string

// Gather returns the corpus unchanged.
func (c StaticCorpus) Gather(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(c), nil
}

// FileCorpus reads the corpus from a file on every call.
type FileCorpus struct {
	Path string
}

// Gather returns the file contents.
func (c FileCorpus) Gather(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus file: %w", err)
	}
	return string(data), nil
}

// SearchSeparator joins the result blocks of consecutive search queries.
const SearchSeparator = "\n\n=== 다음 검색 결과 ===\n\n"

// noResults is what the DuckDuckGo tool returns instead of an error.
const noResults = "No good DuckDuckGo Search Results was found"

// Searcher runs one web search. *duckduckgo.Tool satisfies it.
type Searcher interface {
	Call(ctx context.Context, query string) (string, error)
}

var _ Searcher = (*duckduckgo.Tool)(nil)

// SearchCorpus gathers the corpus from web searches on four marketing
// themes: popup stores, product launches, ambassadors and collaborations.
type SearchCorpus struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSearchCorpus creates a corpus backed by DuckDuckGo search.
func NewSearchCorpus(maxResults int, logger *slog.Logger) (*SearchCorpus, error) {
	tool, err := duckduckgo.New(maxResults, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}
	return NewSearchCorpusWithSearcher(tool, logger), nil
}

// NewSearchCorpusWithSearcher creates a corpus over any Searcher.
func NewSearchCorpusWithSearcher(searcher Searcher, logger *slog.Logger) *SearchCorpus {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchCorpus{
		searcher: searcher,
		logger:   logger.With("component", "search-corpus"),
	}
}

// SearchQueries returns the queries run for a category and time window.
func SearchQueries(category, window string) []string {
	return []string{
		fmt.Sprintf("국내 %s 브랜드 %s 팝업스토어 이슈 뉴스", category, window),
		fmt.Sprintf("국내 %s 브랜드 %s 신제품 출시 이슈", category, window),
		fmt.Sprintf("%s 브랜드 %s 앰배서더 광고모델 발표", category, window),
		fmt.Sprintf("%s 브랜드 %s 콜라보레이션 협업", category, window),
	}
}

// Gather runs every query and joins the non-empty results.
// A failed search fails the whole gather.
func (c *SearchCorpus) Gather(ctx context.Context, category, window string) (string, error) {
	var blocks []string
	for _, query := range SearchQueries(category, window) {
		result, err := c.searcher.Call(ctx, query)
		if err != nil {
			return "", fmt.Errorf("search %q failed: %w", query, err)
		}
		result = strings.TrimSpace(result)
		if result == "" || result == noResults {
			c.logger.Debug("search returned nothing", "query", query)
			continue
		}
		blocks = append(blocks, result)
	}

	c.logger.Info("gathered corpus", "category", category, "window", window, "blocks", len(blocks))
	return strings.Join(blocks, SearchSeparator), nil
}
