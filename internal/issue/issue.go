// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DescriptorNotFoundId Id = iota + 1
	DescriptorParseErrorId
	UnknownFormatId
	EmptyFileListId
	TemplateSyntaxErrorId
	ArchiveWriteFailedId
	ConfigLoadFailedId
	OwnerLookupFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No package descriptor found!

We searched for a srcpack.toml but couldn't find one in the project directory.

## Things you can try:
- Create a descriptor in your current directory:
~~~
$ srcpack init
~~~

- Or run srcpack from the project root:
~~~
$ cd /path/to/your/project
$ srcpack build
~~~

## Example descriptor:
~~~toml
name = "myproject"
version = "1.0"
url = "https://example.com/myproject"

[author]
name = "Jane Doe"
email = "jane@example.com"

packages = ["mypkg"]
~~~`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# Failed to parse the package descriptor!

Your srcpack.toml contains syntax errors or invalid fields.

## Common issues:
- Invalid TOML syntax (missing quotes, brackets, etc.)
- Wrong value types (e.g. a string where a list is expected)
- Misspelled table names ([author], [package_data], [[data_files]])

## Things you can try:
- Check the error message above for the specific line
- Run with verbose mode for more details:
~~~
$ srcpack --verbose check
~~~`,
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown archive format!

The requested archive format is not registered.

## Things you can try:
- List all supported formats:
~~~
$ srcpack formats
~~~

- Check for typos in the --formats flag
- Request several formats as a comma-separated list:
~~~
$ srcpack build --formats gztar,zip
~~~`,
	}

	emptyFileListIssue = &Issue{
		id: EmptyFileListId,
		mdMsg: `
# Nothing to distribute!

The computed file list is empty, so no archive would contain any files.

## Things you can try:
- Declare packages, scripts or data files in srcpack.toml
- Add a MANIFEST.in template with include rules:
~~~
include README.md
graft docs
~~~

- Check that pruning did not remove everything:
~~~
$ srcpack manifest --no-prune
~~~`,
	}

	templateSyntaxErrorIssue = &Issue{
		id: TemplateSyntaxErrorId,
		mdMsg: `
# Invalid MANIFEST.in line!

A line in your manifest template could not be parsed.

## Template commands:
- **include / exclude** <pattern...>
- **global-include / global-exclude** <pattern...>
- **recursive-include / recursive-exclude** <dir> <pattern...>
- **graft / prune** <dir>

## Example:
~~~
include README.md LICENSE
recursive-include docs *.md
prune build
~~~`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Failed to write the archive!

The archive file could not be created or written.

## Common causes:
- The dist directory is not writable
- The disk is full
- An existing archive file is locked by another process

## Things you can try:
- Check permissions on the dist directory
- Point --dist-dir at a writable location`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the srcpack configuration file.

## Configuration file locations:
- Linux: ~/.config/srcpack/config.yaml
- macOS: ~/Library/Application Support/srcpack/config.yaml
- Windows: %APPDATA%\srcpack\config.yaml

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults
- Override settings with SRCPACK_* environment variables`,
	}

	ownerLookupFailedIssue = &Issue{
		id: OwnerLookupFailedId,
		mdMsg: `
# Unknown owner or group!

The account named with --owner/--group does not exist on this system.

## Things you can try:
- Check the spelling of the account name
- Use an account that exists locally (e.g. root)
- Drop the override to keep the original file ownership`,
	}

	issues = map[Id]*Issue{
		descriptorNotFoundIssue.Id():   descriptorNotFoundIssue,
		descriptorParseErrorIssue.Id(): descriptorParseErrorIssue,
		unknownFormatIssue.Id():        unknownFormatIssue,
		emptyFileListIssue.Id():        emptyFileListIssue,
		templateSyntaxErrorIssue.Id():  templateSyntaxErrorIssue,
		archiveWriteFailedIssue.Id():   archiveWriteFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		ownerLookupFailedIssue.Id():    ownerLookupFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
