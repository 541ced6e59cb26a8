package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestGenDocs(t *testing.T) {
	tests := []struct {
		format   string
		wantFile string
	}{
		{"markdown", "medibridge_system_gendocs.md"},
		{"yaml", "medibridge_system_gendocs.yaml"},
		{"man", "medibridge-system-gendocs.1"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			root := &cobra.Command{Use: "medibridge"}
			root.AddCommand(NewSystemCommand())

			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"system", "gendocs", "--outdir", dir, "--format", tt.format})
			if err := root.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}

			data, err := os.ReadFile(filepath.Join(dir, tt.wantFile))
			if err != nil {
				t.Fatalf("read generated doc: %v", err)
			}
			if strings.Contains(string(data), "Auto generated by spf13/cobra") {
				t.Error("generated doc carries the dated footer")
			}
			if !strings.Contains(out.String(), dir) {
				t.Errorf("output %q does not name %s", out.String(), dir)
			}
		})
	}
}

func TestGenDocsRejectsUnknownFormat(t *testing.T) {
	root := &cobra.Command{Use: "medibridge"}
	root.AddCommand(NewSystemCommand())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"system", "gendocs", "--outdir", t.TempDir(), "--format", "html"})
	if err := root.Execute(); err == nil {
		t.Error("unknown format accepted")
	}
}
