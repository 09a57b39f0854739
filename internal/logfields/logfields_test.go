package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "db://assets/prefabs/Box.prefab", Path("db://assets/prefabs/Box.prefab")},
		{"ResolvedPath", KeyResolvedPath, "db://assets/prefabs/Box-001.prefab", ResolvedPath("db://assets/prefabs/Box-001.prefab")},
		{"Module", KeyModule, "asset-db", Module("asset-db")},
		{"Action", KeyAction, "create-asset", Action("create-asset")},
		{"Component", KeyComponent, "cc.Sprite", Component("cc.Sprite")},
		{"DocumentID", KeyDocumentID, "doc-1", DocumentID("doc-1")},
		{"ServerURL", KeyServerURL, "http://127.0.0.1:54321", ServerURL("http://127.0.0.1:54321")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Items(7); v.Key != KeyItems || v.Value.Int64() != 7 {
		t.Fatalf("Items mismatch: %v", v)
	}
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
