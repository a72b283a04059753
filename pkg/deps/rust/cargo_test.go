package rust

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestCargoToml_Parse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	content := `[package]
name = "my-crate"
version = "0.1.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1"
http1 = { package = "http", version = "0.2" }
serde_json = "1.0"

[dev-dependencies]
criterion = "0.5"

[target.'cfg(unix)'.dependencies]
libc = "0.2"

[dependencies.reqwest]
version = "0.12"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := &CargoToml{}
	if !parser.Supports("Cargo.toml") || !parser.Supports("cargo.toml") || parser.Supports("Cargo.lock") {
		t.Error("Supports() mismatch")
	}
	got, err := parser.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"serde", "tokio", "http", "serde_json", "reqwest"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestCargoToml_ParseInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte("[dependencies\nserde ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&CargoToml{}).Parse(path); err == nil {
		t.Error("Parse() of invalid TOML should fail")
	}
}
