// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"srcpack/pkg/archive"
)

func TestRunFormats(t *testing.T) {
	t.Parallel()

	cmd, out := newTestCommand()
	if err := runFormats(cmd, nil); err != nil {
		t.Fatalf("runFormats: %v", err)
	}

	output := out.String()
	for _, f := range archive.Formats() {
		if !strings.Contains(output, "--formats="+f.Name) {
			t.Errorf("missing format %q in output:\n%s", f.Name, output)
		}
		if !strings.Contains(output, f.Description) {
			t.Errorf("missing description %q in output:\n%s", f.Description, output)
		}
	}
}
