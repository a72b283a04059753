package deps

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/techdd/pkg/errors"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"target":       true,
	"bin":          true,
	"obj":          true,
}

// FoundManifest is one manifest file the scanner parsed.
type FoundManifest struct {
	Path      string
	Type      string
	Ecosystem Ecosystem
	Packages  int
}

// ScanResult holds the inventory built from a source tree.
type ScanResult struct {
	Inventory Inventory
	Manifests []FoundManifest
}

// Scanner walks a source tree and collects the packages its manifests
// declare.
type Scanner struct {
	languages []*Language
	logger    *log.Logger
	openFS    func(root string) fs.FS
}

// NewScanner creates a scanner recognizing the manifests of langs.
// A nil logger discards output.
func NewScanner(langs []*Language, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = discardLogger()
	}
	return &Scanner{languages: langs, logger: logger, openFS: os.DirFS}
}

// Scan walks root. The inventory has a key for every known language, even
// when no manifest was found for it. Names are deduplicated within each
// manifest but not across manifests. A manifest that fails to parse, or a
// directory that cannot be read, is logged and skipped; only an unreadable
// root fails the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	res := &ScanResult{Inventory: make(Inventory)}
	for _, l := range s.languages {
		res.Inventory.Add(l.Name)
	}
	err := fs.WalkDir(s.openFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err != nil {
			if rel == "." {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if rel != "." && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if errs.ValidateManifestFilename(d.Name()) != nil {
			return nil
		}
		lang, parser, ok := s.detect(d.Name())
		if !ok {
			return nil
		}
		names, perr := parser.Parse(path)
		if perr != nil {
			s.logger.Warn("skipping manifest", "path", path, "err", perr)
			return nil
		}
		s.logger.Debug("parsed manifest", "path", path, "type", parser.Type(), "packages", len(names))
		res.Inventory.Add(lang.Name, names...)
		res.Manifests = append(res.Manifests, FoundManifest{
			Path:      path,
			Type:      parser.Type(),
			Ecosystem: lang.Name,
			Packages:  len(names),
		})
		return nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "scan %s", root)
	}
	return res, nil
}

func (s *Scanner) detect(filename string) (*Language, ManifestParser, bool) {
	for _, l := range s.languages {
		if p, ok := l.Manifest(filename); ok {
			return l, p, true
		}
	}
	return nil, nil, false
}
