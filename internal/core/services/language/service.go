package language

import "context"

// ILanguageResolver maps free-form user language strings to backend
// language ids
type ILanguageResolver interface {
	// Resolve maps input to a backend language id. The second return is
	// false when no catalog entry matches or the catalog is unavailable.
	Resolve(ctx context.Context, input string) (int, bool)

	// CatalogSample returns up to n known language names, for surfacing to
	// users whose input did not resolve
	CatalogSample(ctx context.Context, n int) []string
}
