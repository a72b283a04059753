package php

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/techdd/pkg/deps"
	errs "github.com/matzehuels/techdd/pkg/errors"
)

// ComposerJSON parses composer.json files. Only the "require" section is
// read; platform requirements (php, ext-*, lib-*, composer-*) are skipped
// because they are not Packagist packages.
type ComposerJSON struct{}

func (c *ComposerJSON) Type() string              { return "composer.json" }
func (c *ComposerJSON) Supports(name string) bool { return name == "composer.json" }

func (c *ComposerJSON) Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.ErrCodeInvalidManifest, "%s is not valid JSON", path)
	}

	var names []string
	gjson.GetBytes(data, "require").ForEach(func(key, _ gjson.Result) bool {
		if name := key.String(); !isPlatform(name) {
			names = append(names, name)
		}
		return true
	})
	return deps.Dedupe(names), nil
}

func isPlatform(name string) bool {
	name = strings.ToLower(name)
	return name == "php" || name == "php-64bit" || name == "hhvm" ||
		strings.HasPrefix(name, "ext-") ||
		strings.HasPrefix(name, "lib-") ||
		strings.HasPrefix(name, "composer-")
}
