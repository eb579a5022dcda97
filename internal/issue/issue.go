// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"github.com/charmbracelet/glamour"

	"juvixdoc/internal/assemble"
	"juvixdoc/internal/fence"
	"juvixdoc/internal/juvix"
	"juvixdoc/internal/snippet"
	"juvixdoc/internal/wikilink"
)

// Id identifies a failure class.
type Id int

const (
	UnknownId Id = iota
	StructuralId
	ValidationId
	DuplicateModuleId
	ExtractionId
	CompileId
	TimeoutId
	SnippetMissingId
	BrokenLinkId
	CompilerNotFoundId
	ConfigLoadFailedId
)

// Issue pairs a failure class with Markdown guidance for the terminal.
type Issue struct {
	id    Id
	mdMsg string
}

// Id returns the issue's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// Render returns the guidance rendered for the terminal.
func (i *Issue) Render() (string, error) {
	return render(i.mdMsg)
}

// render is swapped in tests to avoid terminal detection.
var render = func(md string) (string, error) {
	return glamour.Render(md, "auto")
}

// Classify maps a pipeline error to its failure class.
func Classify(err error) Id {
	var (
		structural *fence.StructuralError
		validation *fence.ValidationError
		duplicate  *assemble.DuplicateModuleError
		extraction *assemble.ExtractionError
		compile    *juvix.CompileError
		timeout    *juvix.TimeoutError
		missing    *snippet.MissingError
		broken     *wikilink.BrokenError
	)
	switch {
	case errors.Is(err, juvix.ErrCompilerNotFound):
		return CompilerNotFoundId
	case errors.As(err, &structural):
		return StructuralId
	case errors.As(err, &validation):
		return ValidationId
	case errors.As(err, &duplicate):
		return DuplicateModuleId
	case errors.As(err, &extraction):
		return ExtractionId
	case errors.As(err, &compile):
		return CompileId
	case errors.As(err, &timeout):
		return TimeoutId
	case errors.As(err, &missing):
		return SnippetMissingId
	case errors.As(err, &broken):
		return BrokenLinkId
	default:
		return UnknownId
	}
}

// Get returns the Issue for a failure class, or nil when the class has no
// curated guidance.
func Get(id Id) *Issue {
	return registry[id]
}

// ForError returns the Issue matching an error's failure class.
func ForError(err error) *Issue {
	return Get(Classify(err))
}

var registry = map[Id]*Issue{
	StructuralId: {
		id: StructuralId,
		mdMsg: `
# Malformed Juvix fence

A Juvix code fence is structurally broken: either it never closes, or its
header carries an option juvixdoc does not know.

## Things you can try
- Check that every ` + "```" + `juvix fence has a matching closing fence.
- Valid fence options are ` + "`hide`" + ` and
  ` + "`extract-module-statements <module> <n>`" + `.`,
	},
	DuplicateModuleId: {
		id: DuplicateModuleId,
		mdMsg: `
# Duplicate module declaration

All non-standalone Juvix fences of one document merge into a single module,
and only the first fence may declare the module header.

## Things you can try
- Remove the ` + "`module ...;`" + ` line from the later fence.
- Or mark the fence ` + "```" + `juvix-standalone so it compiles on its own.`,
	},
	ExtractionId: {
		id: ExtractionId,
		mdMsg: `
# Statement extraction failed

An ` + "`extract-module-statements`" + ` directive named an inner module or a
statement count that the compiled block does not have.

## Things you can try
- Check the inner module name; the match is exact and case-sensitive.
- Lower the statement count to what the module actually contains.`,
	},
	CompileId: {
		id: CompileId,
		mdMsg: `
# Juvix compilation failed

The Juvix compiler rejected the document's assembled module. The diagnostic
above points at the offending fence and line. Remember that hidden fences
still compile: the error may live in a ` + "`juvix hide`" + ` block.`,
	},
	TimeoutId: {
		id: TimeoutId,
		mdMsg: `
# Compiler invocation timed out

The Juvix compiler did not finish within the configured bound.

## Things you can try
- Raise ` + "`juvix.timeout`" + ` in juvixdoc.cue for large modules.
- Check that the compiler is not waiting on a stale package cache; running
  ` + "`juvix dependencies update`" + ` by hand may help.`,
	},
	SnippetMissingId: {
		id: SnippetMissingId,
		mdMsg: `
# Snippet not found

A ` + "`--8<--`" + ` include points at a file or section that does not exist.

## Things you can try
- Check the path against ` + "`snippets.base_paths`" + ` in juvixdoc.cue.
- For section includes, make sure the target file contains matching
  ` + "`--8<-- [start:name]`" + ` and ` + "`--8<-- [end:name]`" + ` lines.`,
	},
	BrokenLinkId: {
		id: BrokenLinkId,
		mdMsg: `
# Broken wiki link

A ` + "`[[Alias]]`" + ` link names a page that does not exist.

## Things you can try
- Check the alias against the target page's first heading, or declare it
  under ` + "`alias:`" + ` in that page's front matter.
- To only warn about broken links, set ` + "`wikilinks.check: false`" + `.`,
	},
	CompilerNotFoundId: {
		id: CompilerNotFoundId,
		mdMsg: `
# Juvix compiler not found

juvixdoc could not find the Juvix binary on your PATH.

## Things you can try
- Install Juvix and make sure ` + "`juvix`" + ` is reachable from your shell.
- Or point ` + "`juvix.bin`" + ` in juvixdoc.cue (or JUVIXDOC_JUVIX_BIN) at
  the binary.
- To build without Juvix processing, set ` + "`juvix.enabled: false`" + `.`,
	},
	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

juvixdoc.cue exists but failed to parse or validate.

## Things you can try
- Check the file for CUE syntax errors.
- Compare field names and values against the documented schema.`,
	},
}
