package ruby

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestGemfile_Supports(t *testing.T) {
	parser := &Gemfile{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"Gemfile", true},
		{"gemfile", false},
		{"Gemfile.lock", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestGemfile_Parse(t *testing.T) {
	dir := t.TempDir()
	gemfile := filepath.Join(dir, "Gemfile")
	content := `source 'https://rubygems.org'

# Web framework
gem 'rails', '~> 7.0'
gem 'puma', '>= 5.0'

group :development, :test do
  gem 'rspec-rails'
  gem 'factory_bot_rails'
end
`
	if err := os.WriteFile(gemfile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&Gemfile{}).Parse(gemfile)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"rails", "puma", "rspec-rails", "factory_bot_rails"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParseGemfile(t *testing.T) {
	content := `gem 'rails'
gem "puma"
gem 'rails'  # duplicate should be ignored
# gem 'commented_out'
gemspec
`
	gems, err := parseGemfile(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(gems, []string{"rails", "puma"}) {
		t.Errorf("parseGemfile() = %v", gems)
	}
}
