package secondary

import (
	"context"
	"time"

	"github.com/crucible-dev/crucible/internal/domain"
)

// ExecutionBackend is the sandboxed code-runner the pipeline submits
// accepted code to. It is an opaque external collaborator.
type ExecutionBackend interface {
	// ListLanguages fetches the backend's supported-language catalog.
	// An error means the catalog is unavailable right now; callers degrade
	// to unresolved rather than treating it as fatal.
	ListLanguages(ctx context.Context) ([]domain.LanguageCatalogEntry, error)

	// Execute runs code under the given backend language id. The call
	// blocks until a result arrives or the timeout elapses; every failure
	// mode is folded into the returned outcome.
	Execute(ctx context.Context, languageID int, code string, timeout time.Duration) domain.ExecutionOutcome
}
