// SPDX-License-Identifier: MPL-2.0

package filelist

import (
	"errors"
	"fmt"
	"strings"
)

// TemplateError reports a malformed MANIFEST.in line.
type TemplateError struct {
	Line    int    // 1-based line number, 0 when unknown
	Text    string // the offending line
	Message string
}

func (e *TemplateError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest template line %d: %s: %q", e.Line, e.Message, e.Text)
	}
	return fmt.Sprintf("manifest template: %s: %q", e.Message, e.Text)
}

// ProcessTemplate applies every line of a MANIFEST.in template to the list.
// Blank lines and '#' comments are skipped. The first malformed line stops
// processing and is returned as a *TemplateError.
func (l *FileList) ProcessTemplate(content string) error {
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := l.ProcessTemplateLine(line); err != nil {
			var terr *TemplateError
			if errors.As(err, &terr) {
				terr.Line = i + 1
				return terr
			}
			return err
		}
	}
	return nil
}

// ProcessTemplateLine parses and applies a single template command:
//
//	include/exclude <pattern...>
//	global-include/global-exclude <pattern...>
//	recursive-include/recursive-exclude <dir> <pattern...>
//	graft/prune <dir>
func (l *FileList) ProcessTemplateLine(line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	action, args := words[0], words[1:]

	switch action {
	case "include", "exclude", "global-include", "global-exclude":
		if len(args) == 0 {
			return &TemplateError{Text: line, Message: action + " expects one or more patterns"}
		}
	case "recursive-include", "recursive-exclude":
		if len(args) < 2 {
			return &TemplateError{Text: line, Message: action + " expects a directory and one or more patterns"}
		}
	case "graft", "prune":
		if len(args) != 1 {
			return &TemplateError{Text: line, Message: action + " expects a single directory"}
		}
	default:
		return &TemplateError{Text: line, Message: "unknown template command " + action}
	}

	switch action {
	case "include":
		l.Include(args...)
	case "exclude":
		l.Exclude(args...)
	case "global-include":
		l.GlobalInclude(args...)
	case "global-exclude":
		l.GlobalExclude(args...)
	case "recursive-include":
		l.RecursiveInclude(args[0], args[1:]...)
	case "recursive-exclude":
		l.RecursiveExclude(args[0], args[1:]...)
	case "graft":
		l.Graft(args[0])
	case "prune":
		l.Prune(args[0])
	}
	return nil
}
