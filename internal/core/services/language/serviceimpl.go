package language

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/domain"
)

var _ ILanguageResolver = (*LanguageResolver)(nil)

// fallbackAliases maps common short names to a canonical name that is then
// matched against the catalog by substring
var fallbackAliases = map[string]string{
	"py":     "python",
	"js":     "javascript",
	"ts":     "typescript",
	"golang": "go",
	"c++":    "cpp",
	"cs":     "c#",
	"rb":     "ruby",
	"rs":     "rust",
	"kt":     "kotlin",
	"sh":     "bash",
}

// LanguageResolver resolves user language strings against the backend's
// language catalog. The catalog is fetched at most once per process
// lifetime and shared read-only afterwards; a failed fetch caches nothing
// so the next resolution retries.
type LanguageResolver struct {
	backend secondary.ExecutionBackend
	logger  primary.Logger

	catalog atomic.Pointer[[]domain.LanguageCatalogEntry]
	fetch   singleflight.Group
}

// NewLanguageResolver creates a resolver backed by the given execution backend
func NewLanguageResolver(backend secondary.ExecutionBackend, logger primary.Logger) *LanguageResolver {
	return &LanguageResolver{
		backend: backend,
		logger:  logger,
	}
}

// Resolve maps input to a backend language id, first match wins:
// numeric passthrough, exact id/name/alias match, substring match,
// fallback alias table.
func (r *LanguageResolver) Resolve(ctx context.Context, input string) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}

	// Purely numeric input is taken as a backend id directly, no catalog
	// lookup needed
	if id, err := strconv.Atoi(input); err == nil && id > 0 {
		return id, true
	}

	entries := r.loadCatalog(ctx)
	if entries == nil {
		return 0, false
	}

	lowered := strings.ToLower(input)

	for _, entry := range entries {
		if matchesExact(entry, lowered) {
			return entry.ID, true
		}
	}

	for _, entry := range entries {
		if matchesSubstring(entry, lowered) {
			return entry.ID, true
		}
	}

	if canonical, ok := fallbackAliases[lowered]; ok {
		for _, entry := range entries {
			if matchesSubstring(entry, canonical) {
				return entry.ID, true
			}
		}
	}

	return 0, false
}

// CatalogSample returns up to n known language names
func (r *LanguageResolver) CatalogSample(ctx context.Context, n int) []string {
	entries := r.loadCatalog(ctx)
	if entries == nil {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	names := make([]string, 0, n)
	for _, entry := range entries[:n] {
		names = append(names, entry.Name)
	}
	return names
}

// loadCatalog returns the cached catalog, fetching it on first use.
// Concurrent first callers share a single in-flight fetch.
func (r *LanguageResolver) loadCatalog(ctx context.Context) []domain.LanguageCatalogEntry {
	if cached := r.catalog.Load(); cached != nil {
		return *cached
	}

	fetched, err, _ := r.fetch.Do("catalog", func() (interface{}, error) {
		// Another caller may have populated the cache while this one
		// waited on the flight group
		if cached := r.catalog.Load(); cached != nil {
			return *cached, nil
		}

		entries, err := r.backend.ListLanguages(ctx)
		if err != nil {
			return nil, err
		}

		r.catalog.Store(&entries)
		r.logger.Info("Language catalog fetched", "entries", len(entries))
		return entries, nil
	})
	if err != nil {
		r.logger.Error("Failed to fetch language catalog", "error", err)
		return nil
	}

	return fetched.([]domain.LanguageCatalogEntry)
}

func matchesExact(entry domain.LanguageCatalogEntry, lowered string) bool {
	if strconv.Itoa(entry.ID) == lowered {
		return true
	}
	if strings.EqualFold(entry.Name, lowered) {
		return true
	}
	for _, alias := range entry.Aliases {
		if strings.EqualFold(alias, lowered) {
			return true
		}
	}
	return false
}

func matchesSubstring(entry domain.LanguageCatalogEntry, lowered string) bool {
	haystack := strings.ToLower(strconv.Itoa(entry.ID) + " " + entry.Name + " " + strings.Join(entry.Aliases, " "))
	return strings.Contains(haystack, lowered)
}
