package pipeline

import (
	"strings"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/deps/languages"
	errs "github.com/matzehuels/techdd/pkg/errors"
)

// ParseInventory builds an inventory from "ecosystem:name" arguments.
// The ecosystem may be a tag or an alias ("python:flask", "npm:@babel/core",
// "composer:laravel/framework"). Order within an ecosystem is kept.
func ParseInventory(args []string) (deps.Inventory, error) {
	inv := make(deps.Inventory)
	for _, arg := range args {
		eco, name, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "expected ecosystem:name, got %q", arg)
		}
		lang, err := languages.Find(eco)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if err := errs.ValidatePackageName(name); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPackage, err, "%s", arg)
		}
		inv.Add(lang.Name, name)
	}
	return inv, nil
}

// selectLanguages resolves names to languages. No names selects them all.
func selectLanguages(names []string) ([]*deps.Language, error) {
	if len(names) == 0 {
		return languages.All, nil
	}
	var out []*deps.Language
	seen := make(map[deps.Ecosystem]bool)
	for _, n := range names {
		l, err := languages.Find(n)
		if err != nil {
			return nil, err
		}
		if !seen[l.Name] {
			seen[l.Name] = true
			out = append(out, l)
		}
	}
	return out, nil
}
