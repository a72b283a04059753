package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/deps"
	"github.com/matzehuels/techdd/pkg/deps/languages"
)

// ecosystemsCommand lists the supported ecosystems.
func (c *CLI) ecosystemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ecosystems",
		Aliases: []string{"languages"},
		Short:   "List supported ecosystems, aliases and manifest files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.flags.config
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Ecosystem", "Aliases", "Vulnerability DB", "Registry", "Manifests"})
			for _, l := range languages.All {
				registry := l.DefaultRegistry
				vulnDB := l.VulnerabilityEcosystem
				if cfg != nil {
					registry = configured(cfg.Registries, l, registry)
					vulnDB = configured(cfg.VulnerabilityEcosystems, l, vulnDB)
				}
				var manifests []string
				for _, p := range l.ManifestParsers {
					manifests = append(manifests, p.Type())
				}
				t.AppendRow(table.Row{
					l.Name.String(),
					strings.Join(l.Aliases, ", "),
					vulnDB,
					registry,
					strings.Join(manifests, ", "),
				})
			}
			t.Render()
			return nil
		},
	}
}

// configured returns the value m holds for lang under its tag or one of
// its aliases, or def.
func configured(m map[string]string, lang *deps.Language, def string) string {
	for k, v := range m {
		if lang.Matches(k) {
			return v
		}
	}
	return def
}
