package document

import (
	"encoding/json"
	"testing"
)

func TestAppendIncrementsAndPreservesHistory(t *testing.T) {
	data := &VersionedData{}

	if data.Initialized() {
		t.Fatal("empty payload should not be initialized")
	}

	if got := data.Append("Hello"); got != 1 {
		t.Fatalf("expected first version 1, got %d", got)
	}
	if got := data.Append("v2"); got != 2 {
		t.Fatalf("expected second version 2, got %d", got)
	}

	first, ok := data.Version(1)
	if !ok || first != "Hello" {
		t.Fatalf("version 1 changed after append: %q ok=%v", first, ok)
	}
	latest, ok := data.Latest()
	if !ok || latest != "v2" {
		t.Fatalf("unexpected latest: %q ok=%v", latest, ok)
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateDetectsGaps(t *testing.T) {
	data := &VersionedData{
		LatestVersion: 3,
		Versions:      map[string]string{"1": "a", "3": "c"},
	}
	if err := data.Validate(); err == nil {
		t.Fatal("expected gap to fail validation")
	}

	data = &VersionedData{
		LatestVersion: 0,
		Versions:      map[string]string{"1": "a"},
	}
	if err := data.Validate(); err == nil {
		t.Fatal("expected orphan versions to fail validation")
	}

	var nilData *VersionedData
	if err := nilData.Validate(); err != nil {
		t.Fatalf("nil payload should validate: %v", err)
	}
}

func TestPayloadJSONRoundTrip(t *testing.T) {
	data := &VersionedData{}
	data.Append("Hello")
	data.Append("v2")
	data.Append("v3")

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var restored VersionedData
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if restored.LatestVersion != 3 {
		t.Fatalf("expected latestVersion 3, got %d", restored.LatestVersion)
	}
	if err := restored.Validate(); err != nil {
		t.Fatalf("round-tripped payload invalid: %v", err)
	}
	for key, want := range data.Versions {
		if got := restored.Versions[key]; got != want {
			t.Fatalf("version %s changed in round trip: %q != %q", key, got, want)
		}
	}
}

func TestCloneDoesNotAliasVersions(t *testing.T) {
	data := &VersionedData{}
	data.Append("Hello")

	copied := data.Clone()
	copied.Append("v2")

	if data.LatestVersion != 1 || len(data.Versions) != 1 {
		t.Fatalf("mutating the clone changed the source: %#v", data)
	}
}
