package models

// DiscoverySource identifies which extraction pass produced a link.
type DiscoverySource string

const (
	// DiscoverySourceDOM marks links read from live anchor elements.
	DiscoverySourceDOM DiscoverySource = "dom"
	// DiscoverySourceRegex marks links found by the raw-HTML pattern scan.
	DiscoverySourceRegex DiscoverySource = "regex"
	// DiscoverySourceAttributeScan marks links recovered from non-href
	// attributes (data-href, aria-label and similar) anywhere in the document.
	DiscoverySourceAttributeScan DiscoverySource = "attribute-scan"
	// DiscoverySourceScript marks links mined from inline script bodies.
	DiscoverySourceScript DiscoverySource = "script"
)

// Link represents one deduplicated hyperlink discovered on the inspected page.
// Identity is the normalized absolute URL in Href; a URL discovered by several
// passes keeps one entry with all of its sources accumulated.
type Link struct {
	Href     string            `json:"href"`
	Text     string            `json:"text,omitempty"`
	Rel      string            `json:"rel,omitempty"`
	Sources  []DiscoverySource `json:"sources"`
	Internal bool              `json:"internal"`
}

// PrimarySource returns the discovery source that first produced the link.
func (l *Link) PrimarySource() DiscoverySource {
	if len(l.Sources) == 0 {
		return ""
	}
	return l.Sources[0]
}

// HasSource reports whether the link was seen by the given extraction pass.
func (l *Link) HasSource(source DiscoverySource) bool {
	for _, s := range l.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// AddSource records an additional discovery source, keeping the set free of
// duplicates and the first-seen source in front.
func (l *Link) AddSource(source DiscoverySource) {
	if l.HasSource(source) {
		return
	}
	l.Sources = append(l.Sources, source)
}
