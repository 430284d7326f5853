package language_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/crucible-dev/crucible/internal/core/services/language"
	"github.com/crucible-dev/crucible/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeBackend struct {
	mu        sync.Mutex
	calls     int
	failCalls int
	delay     time.Duration
	entries   []domain.LanguageCatalogEntry
}

func (f *fakeBackend) ListLanguages(ctx context.Context) ([]domain.LanguageCatalogEntry, error) {
	f.mu.Lock()
	f.calls++
	shouldFail := f.calls <= f.failCalls
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if shouldFail {
		return nil, errors.New("backend unavailable")
	}
	return f.entries, nil
}

func (f *fakeBackend) Execute(ctx context.Context, languageID int, code string, timeout time.Duration) domain.ExecutionOutcome {
	return domain.ExecutionFailure("not implemented")
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func catalogEntries() []domain.LanguageCatalogEntry {
	return []domain.LanguageCatalogEntry{
		{ID: 9, Name: "PyPy (7.3)"},
		{ID: 2, Name: "Python (3.11)", Aliases: []string{"py", "python3"}},
		{ID: 60, Name: "Go (1.22)"},
		{ID: 62, Name: "Java (OpenJDK 17)"},
	}
}

func TestResolveNumericPassthrough(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: catalogEntries()}
	resolver := language.NewLanguageResolver(backend, nopLogger{})

	id, ok := resolver.Resolve(context.Background(), "71")
	if !ok || id != 71 {
		t.Fatalf("Resolve(71) = (%d, %v), want (71, true)", id, ok)
	}

	// numeric inputs must not touch the catalog
	if got := backend.callCount(); got != 0 {
		t.Errorf("catalog fetches = %d, want 0", got)
	}
}

func TestResolveMatching(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: catalogEntries()}
	resolver := language.NewLanguageResolver(backend, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		input  string
		wantID int
		wantOK bool
	}{
		// exact alias beats the pypy substring match
		{name: "exact alias", input: "py", wantID: 2, wantOK: true},
		{name: "exact name case-insensitive", input: "python (3.11)", wantID: 2, wantOK: true},
		{name: "substring", input: "java", wantID: 62, wantOK: true},
		{name: "fallback alias", input: "golang", wantID: 60, wantOK: true},
		{name: "whitespace trimmed", input: "  python3  ", wantID: 2, wantOK: true},
		{name: "unknown", input: "cobol", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "negative number", input: "-3", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			id, ok := resolver.Resolve(ctx, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("Resolve(%q) = %d, want %d", tt.input, id, tt.wantID)
			}
		})
	}

	// the whole table shares one catalog fetch
	if got := backend.callCount(); got != 1 {
		t.Errorf("catalog fetches = %d, want 1", got)
	}
}

func TestResolveRetriesAfterFailedFetch(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: catalogEntries(), failCalls: 1}
	resolver := language.NewLanguageResolver(backend, nopLogger{})
	ctx := context.Background()

	if _, ok := resolver.Resolve(ctx, "python3"); ok {
		t.Fatal("resolution succeeded while the catalog was unavailable")
	}

	id, ok := resolver.Resolve(ctx, "python3")
	if !ok || id != 2 {
		t.Fatalf("Resolve after recovery = (%d, %v), want (2, true)", id, ok)
	}
	if got := backend.callCount(); got != 2 {
		t.Errorf("catalog fetches = %d, want 2", got)
	}
}

func TestResolveConcurrentSingleFetch(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: catalogEntries(), delay: 50 * time.Millisecond}
	resolver := language.NewLanguageResolver(backend, nopLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ok := resolver.Resolve(context.Background(), "python3")
			if !ok || id != 2 {
				t.Errorf("concurrent Resolve = (%d, %v), want (2, true)", id, ok)
			}
		}()
	}
	wg.Wait()

	if got := backend.callCount(); got != 1 {
		t.Errorf("catalog fetches = %d, want 1", got)
	}
}

func TestCatalogSample(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: catalogEntries()}
	resolver := language.NewLanguageResolver(backend, nopLogger{})
	ctx := context.Background()

	sample := resolver.CatalogSample(ctx, 2)
	if len(sample) != 2 {
		t.Fatalf("sample size = %d, want 2", len(sample))
	}

	all := resolver.CatalogSample(ctx, 100)
	if len(all) != len(catalogEntries()) {
		t.Errorf("oversized sample = %d names, want %d", len(all), len(catalogEntries()))
	}
}

func TestCatalogSampleUnavailable(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{failCalls: 1 << 30}
	resolver := language.NewLanguageResolver(backend, nopLogger{})

	if sample := resolver.CatalogSample(context.Background(), 5); sample != nil {
		t.Errorf("sample = %v, want nil while catalog is unavailable", sample)
	}
}
