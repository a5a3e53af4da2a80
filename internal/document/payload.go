// Package document holds the versioned payload model and the client-side
// version navigation state for BRS documents.
package document

import (
	"fmt"
	"strconv"
)

// VersionedData is the payload persisted alongside a document record. Versions
// are full-text snapshots keyed by their version number serialized as a string.
// Entries are immutable once written; LatestVersion only ever increases.
type VersionedData struct {
	LatestVersion int64             `json:"latestVersion"`
	Versions      map[string]string `json:"versions"`
}

// Initialized reports whether the first version has been published.
func (d *VersionedData) Initialized() bool {
	return d != nil && d.LatestVersion > 0
}

// Version returns the snapshot for version n.
func (d *VersionedData) Version(n int64) (string, bool) {
	if d == nil || d.Versions == nil {
		return "", false
	}
	text, ok := d.Versions[strconv.FormatInt(n, 10)]
	return text, ok
}

// Latest returns the newest snapshot.
func (d *VersionedData) Latest() (string, bool) {
	if d == nil {
		return "", false
	}
	return d.Version(d.LatestVersion)
}

// Append records text as the next version and returns its number. Prior
// entries are never touched.
func (d *VersionedData) Append(text string) int64 {
	if d.Versions == nil {
		d.Versions = make(map[string]string)
	}
	next := d.LatestVersion + 1
	d.Versions[strconv.FormatInt(next, 10)] = text
	d.LatestVersion = next
	return next
}

// Validate checks the contiguity invariant: the versions map must contain
// exactly the keys "1" through LatestVersion, with no gaps.
func (d *VersionedData) Validate() error {
	if d == nil || d.LatestVersion == 0 {
		if d != nil && len(d.Versions) > 0 {
			return fmt.Errorf("document payload: %d version(s) present but latestVersion is unset", len(d.Versions))
		}
		return nil
	}
	if d.LatestVersion < 0 {
		return fmt.Errorf("document payload: negative latestVersion %d", d.LatestVersion)
	}
	if int64(len(d.Versions)) != d.LatestVersion {
		return fmt.Errorf("document payload: expected %d versions, found %d", d.LatestVersion, len(d.Versions))
	}
	for n := int64(1); n <= d.LatestVersion; n++ {
		if _, ok := d.Versions[strconv.FormatInt(n, 10)]; !ok {
			return fmt.Errorf("document payload: missing version %d", n)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without aliasing the source map.
func (d *VersionedData) Clone() *VersionedData {
	if d == nil {
		return nil
	}
	copied := &VersionedData{LatestVersion: d.LatestVersion}
	if d.Versions != nil {
		copied.Versions = make(map[string]string, len(d.Versions))
		for k, v := range d.Versions {
			copied.Versions[k] = v
		}
	}
	return copied
}
