package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with args and returns what it printed to stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, name := range []string{"terminology", "output", "table-name", "format", "sheet", "messages-format"} {
		if fl := renderCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set("")
			fl.Changed = false
		}
	}
	for name, def := range map[string]string{"report": "false", "escape": "true"} {
		if fl := renderCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set(def)
			fl.Changed = false
		}
	}
	cfgFile, debug, logFormat = "", false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func fixtures(t *testing.T, dir string) (terminology, table, msgs string) {
	t.Helper()
	terminology = writeFile(t, dir, "terminology.tsv", "ID\tLabel\nONT:0001\tAntigen\nONT:0002\tHost\n")
	table = writeFile(t, dir, "exposure.csv", "Exposure Material,Host(s)\nrequired: Antigen,Host\noptional: Mystery,\n")
	msgs = writeFile(t, dir, "messages.tsv",
		"table\tcell\trule ID\trule\tmessage\tsuggestion\tlevel\n"+
			"exposure\tA3\tR7\tmust be a known term\tMystery is not \"known\"\tAntigen\terror\n"+
			"datatype\tZZ\t\t\t\t\t\n")
	return
}

func TestCLI_RenderToStdout(t *testing.T) {
	home := isolateHome(t)
	terminology, table, msgs := fixtures(t, home)

	out := mustRun(t, "render", table, msgs, "-t", terminology)
	for _, want := range []string{
		"<th><a href='/instructions#exposure-material'>Exposure Material</a></th>",
		"<th><a href='/instructions#host-s-'>Host(s)</a></th>",
		"<td class='table-success'>required: <a href='/terminology/ONT:0001'>Antigen</a></td>",
		"<td><a href='/terminology/ONT:0002'>Host</a></td>",
		`<td class='table-warning table-danger' data-toggle="tooltip" data-placement="bottom" data-html="true" title="R7: must be a known term<br>Mystery is not &quot;known&quot;<br>Suggestion: 'Antigen'">optional: Mystery</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "alert") {
		t.Fatalf("unexpected banner without --report:\n%s", out)
	}
}

func TestCLI_RenderReportToFile(t *testing.T) {
	home := isolateHome(t)
	terminology, table, msgs := fixtures(t, home)
	dest := filepath.Join(home, "out", "exposure.html")

	mustRun(t, "render", table, msgs, "-t", terminology, "--report", "-o", dest)
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(b), "<p class='alert alert-danger'>This template contains errors.</p>\n\n<table class='table'>") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestCLI_RenderOtherTableName(t *testing.T) {
	home := isolateHome(t)
	terminology, table, msgs := fixtures(t, home)
	// The datatype finding has a malformed cell; only indexing it should fail.
	if _, err := runCmd(t, "render", table, msgs, "-t", terminology, "--table-name", "datatype"); err == nil {
		t.Fatalf("expected malformed cell error")
	}
	out := mustRun(t, "render", table, msgs, "-t", terminology, "--table-name", "specimen", "--report")
	if !strings.Contains(out, "This template is valid.") || strings.Contains(out, "table-danger") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCLI_RenderErrors(t *testing.T) {
	home := isolateHome(t)
	headerOnly := writeFile(t, home, "empty.tsv", "A\tB\n")
	if _, err := runCmd(t, "render", headerOnly); err == nil || !strings.Contains(err.Error(), "no records") {
		t.Fatalf("expected empty dataset error, got %v", err)
	}
	odd := writeFile(t, home, "exposure.ods", "whatever")
	if _, err := runCmd(t, "render", odd); err == nil || !strings.Contains(err.Error(), "unrecognized table format") {
		t.Fatalf("expected unrecognized format error, got %v", err)
	}
	if _, err := runCmd(t, "render", filepath.Join(home, "missing.csv")); err == nil {
		t.Fatalf("expected read error for missing file")
	}
}

func TestCLI_RenderUsesConfiguredTerminology(t *testing.T) {
	home := isolateHome(t)
	terminology, table, _ := fixtures(t, home)
	mustRun(t, "config", "set", "terminology", terminology)
	mustRun(t, "config", "set", "terminology_path", "/ontology/")

	out := mustRun(t, "render", table)
	if !strings.Contains(out, "<a href='/ontology/ONT:0001'>Antigen</a>") {
		t.Fatalf("configured terminology not applied:\n%s", out)
	}
}

func TestCLI_Convert(t *testing.T) {
	home := isolateHome(t)
	in := writeFile(t, home, "terminology.tsv", "ID\tLabel\nONT:0001\tAntigen, native\n")
	dest := filepath.Join(home, "terminology.csv")
	mustRun(t, "convert", in, dest)
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "ID,Label\r\nONT:0001,\"Antigen, native\"\r\n" {
		t.Fatalf("unexpected csv: %q", b)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	isolateHome(t)
	mustRun(t, "config", "set", "target_table", "specimen")
	mustRun(t, "config", "set", "escape_cell_text", "false")
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "target_table: specimen") || !strings.Contains(out, "escape_cell_text: false") {
		t.Fatalf("unexpected config:\n%s", out)
	}
	if _, err := runCmd(t, "config", "set", "log_format", "xml"); err == nil {
		t.Fatalf("expected invalid log_format error")
	}
	if _, err := runCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
