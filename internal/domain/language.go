package domain

// LanguageCatalogEntry is one language the execution backend supports, as
// reported by its catalog endpoint. Entries are fetched once per process
// and shared read-only across resolutions.
type LanguageCatalogEntry struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}
