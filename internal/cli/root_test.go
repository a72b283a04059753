package cli

import (
	"bytes"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/pipeline"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"scan", "enrich", "render", "ecosystems", "config", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	for _, flag := range []string{"verbose", "config", "metrics"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Bytes(), []byte("techdd version")) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestEnrichFlagsApply(t *testing.T) {
	var f enrichFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--workers", "4", "--throttle", "-1s"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Workers: 16, Throttle: time.Second, MaxAttempts: 3}
	if err := f.apply(cmd, &opts); err != nil {
		t.Fatal(err)
	}
	if opts.Workers != 4 || opts.Throttle != -time.Second || opts.MaxAttempts != 3 {
		t.Errorf("opts = %+v, want workers and throttle overridden only", opts)
	}
}

func TestEnrichFlagsApplyInvalidThrottle(t *testing.T) {
	var f enrichFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd)
	cmd.ParseFlags([]string{"--throttle", "soon"})
	if err := f.apply(cmd, &pipeline.Options{}); err == nil {
		t.Error("invalid throttle should fail")
	}
}
