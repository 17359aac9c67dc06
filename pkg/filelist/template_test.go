// SPDX-License-Identifier: MPL-2.0

package filelist

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestProcessTemplateLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown command", "frobnicate *.txt"},
		{"include without pattern", "include"},
		{"recursive-include without pattern", "recursive-include docs"},
		{"graft with two args", "graft docs extra"},
		{"prune without dir", "prune"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList()
			err := l.ProcessTemplateLine(tt.line)
			if err == nil {
				t.Fatalf("ProcessTemplateLine(%q) should fail", tt.line)
			}
			var terr *TemplateError
			if !errors.As(err, &terr) {
				t.Fatalf("error is %T, want *TemplateError", err)
			}
		})
	}
}

func TestProcessTemplate(t *testing.T) {
	l := newList()
	template := `
# ship the docs, drop generated output
include README
graft docs
global-include *.sh
prune build
recursive-exclude docs *.md
`
	if err := l.ProcessTemplate(template); err != nil {
		t.Fatalf("ProcessTemplate() error: %v", err)
	}
	l.SortAndDedup()

	want := []string{"README", "scripts/run.sh"}
	if !reflect.DeepEqual(l.Files(), want) {
		t.Errorf("Files() = %v, want %v", l.Files(), want)
	}
}

func TestProcessTemplate_ReportsLineNumber(t *testing.T) {
	l := newList()
	err := l.ProcessTemplate("include README\n\nbogus-command x\n")
	if err == nil {
		t.Fatal("ProcessTemplate() should fail on the bogus command")
	}

	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("error is %T, want *TemplateError", err)
	}
	if terr.Line != 3 {
		t.Errorf("Line = %d, want 3", terr.Line)
	}
	if !strings.Contains(err.Error(), "bogus-command") {
		t.Errorf("error %q does not name the command", err.Error())
	}
}
