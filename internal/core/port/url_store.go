package port

// URLStorePort is the handoff file between the crawler and the
// pipeline: a flat, newline-delimited list of listing URLs.
type URLStorePort interface {
	SaveURLs(urls []string) error
	LoadURLs() ([]string, error)
}
