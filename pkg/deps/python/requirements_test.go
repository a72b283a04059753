package python

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestRequirements_Supports(t *testing.T) {
	parser := &Requirements{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"requirements.txt", true},
		{"requirements-dev.txt", true},
		{"requirements_prod.txt", true},
		{"dev-requirements.txt", true},
		{"pyproject.toml", false},
		{"poetry.lock", false},
		{"Pipfile", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRequirements_Parse(t *testing.T) {
	dir := t.TempDir()
	reqFile := filepath.Join(dir, "requirements.txt")
	content := `# Test requirements
requests>=2.28.0
click==8.1.0
pydantic[email]>=2.0
# Comment line
httpx
Flask_Login ; python_version >= "3.8"
requests==2.31.0

-e ./local-package
-r base.txt
git+https://github.com/user/repo.git
https://example.com/pkg.tar.gz
`
	if err := os.WriteFile(reqFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&Requirements{}).Parse(reqFile)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"requests", "click", "pydantic", "httpx", "flask-login"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestRequirements_ParseMissingFile(t *testing.T) {
	if _, err := (&Requirements{}).Parse(filepath.Join(t.TempDir(), "requirements.txt")); err == nil {
		t.Error("Parse() of a missing file should fail")
	}
}

func TestPoetryLock_Parse(t *testing.T) {
	dir := t.TempDir()
	lockFile := filepath.Join(dir, "poetry.lock")
	content := `[[package]]
name = "requests"
version = "2.31.0"

[package.dependencies]
certifi = ">=2017.4.17"

[[package]]
name = "certifi"
version = "2024.2.2"

[[package]]
name = "Typing_Extensions"
version = "4.9.0"

[metadata]
lock-version = "2.0"
`
	if err := os.WriteFile(lockFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := &PoetryLock{}
	if !parser.Supports("poetry.lock") || parser.Supports("Poetry.lock") {
		t.Error("Supports() should match poetry.lock exactly")
	}
	got, err := parser.Parse(lockFile)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"requests", "certifi", "typing-extensions"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestPoetryLock_ParseInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poetry.lock")
	if err := os.WriteFile(path, []byte("[[package]\nname="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&PoetryLock{}).Parse(path); err == nil {
		t.Error("Parse() of invalid TOML should fail")
	}
}
