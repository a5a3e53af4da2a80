package document

// Navigator is the explicit session state for paging through the versions of
// a fetched document. It performs no I/O: the version map is loaded once per
// document-open and the navigator only indexes into it. Legacy documents that
// predate versioning carry a single unversioned body.
type Navigator struct {
	Data    VersionedData `json:"data"`
	Current int64         `json:"current"`
	Legacy  bool          `json:"legacy"`
	Content string        `json:"content"`
}

// NewNavigator opens a versioned document at its newest version.
func NewNavigator(data VersionedData) *Navigator {
	n := &Navigator{Data: data, Current: data.LatestVersion}
	if text, ok := data.Latest(); ok {
		n.Content = text
	}
	return n
}

// NewLegacyNavigator wraps an unversioned document body. Version selection is
// a no-op for legacy documents.
func NewLegacyNavigator(content string) *Navigator {
	return &Navigator{Legacy: true, Content: content}
}

// Latest returns the newest version number, zero for legacy documents.
func (n *Navigator) Latest() int64 {
	if n.Legacy {
		return 0
	}
	return n.Data.LatestVersion
}

// SelectVersion displays version v if it exists and reports whether the
// selection changed anything. Out-of-range input leaves the current version
// untouched.
func (n *Navigator) SelectVersion(v int64) bool {
	if n.Legacy {
		return false
	}
	text, ok := n.Data.Version(v)
	if !ok {
		return false
	}
	n.Current = v
	n.Content = text
	return true
}

// Prev moves to the previous version if one exists.
func (n *Navigator) Prev() bool {
	return n.SelectVersion(n.Current - 1)
}

// Next moves to the next version if one exists.
func (n *Navigator) Next() bool {
	return n.SelectVersion(n.Current + 1)
}
