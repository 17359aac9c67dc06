// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"srcpack/internal/issue"
	"srcpack/pkg/filelist"
	"srcpack/pkg/sdist"
)

// issueIDFor maps a build error to its issue catalog entry, or 0 when no
// entry applies. The catalog text gives remediation steps beyond what the
// one-line error message can carry.
func issueIDFor(err error) issue.Id {
	var optErr *sdist.OptionError
	if errors.As(err, &optErr) {
		return issue.UnknownFormatId
	}

	var tmplErr *filelist.TemplateError
	if errors.As(err, &tmplErr) {
		return issue.TemplateSyntaxErrorId
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Operation {
		case "load package descriptor":
			return issue.DescriptorNotFoundId
		case "parse package descriptor":
			return issue.DescriptorParseErrorId
		case "build source distribution":
			return issue.EmptyFileListId
		case "resolve archive owner", "resolve archive group":
			return issue.OwnerLookupFailedId
		case "load configuration", "parse configuration", "validate configuration":
			return issue.ConfigLoadFailedId
		case "write archive", "write manifest":
			return issue.ArchiveWriteFailedId
		}
	}
	return 0
}

// renderIssueHelp prints the catalog entry for id, if one exists.
func renderIssueHelp(stderr io.Writer, id issue.Id) {
	if id == 0 {
		return
	}

	catalogEntry := issue.Get(id)
	if catalogEntry == nil {
		return
	}

	rendered, renderErr := catalogEntry.Render("dark")
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
		return
	}
	fmt.Fprint(stderr, rendered)
}
