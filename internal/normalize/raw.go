package normalize

// RawGameRecord is one scraped gamelog row before cleaning. Stats holds the
// cell text keyed by the source's data-stat attribute names; everything stays
// a string until the normalizer parses it.
type RawGameRecord struct {
	Season     int
	SchoolName string
	SchoolSlug string
	GameID     string
	Stats      map[string]string
}

// Stat returns the named cell text, empty when absent.
func (r *RawGameRecord) Stat(name string) string {
	return r.Stats[name]
}
