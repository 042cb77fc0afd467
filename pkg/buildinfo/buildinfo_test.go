package buildinfo

import "testing"

func TestBinaryVersionDefault(t *testing.T) {
	if BinaryVersion == "" {
		t.Error("BinaryVersion should not be empty")
	}
	if BinaryVersion != "dev" {
		t.Errorf("Expected BinaryVersion to be 'dev', got '%s'", BinaryVersion)
	}
}

func TestModuleVersion(t *testing.T) {
	// Module version may be empty when build info is unavailable (go test
	// in-place); the call itself must not panic.
	_ = ModuleVersion()
}
