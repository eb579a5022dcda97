// SPDX-License-Identifier: MPL-2.0

package snippet

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// maxDepth bounds nested includes so include cycles terminate with an error
// instead of recursing forever.
const maxDepth = 8

var (
	// inlineRe matches an inline scissors marker with a quoted path.
	inlineRe = regexp.MustCompile(`^(?P<space>[ \t]*)(?P<escape>;*)-{1,}8<-{1,}[ \t]+(?:"(?P<dq>[^"\n]+)"|'(?P<sq>[^'\n]+)')[ \t]*$`)
	// blockRe matches a bare scissors marker opening or closing a block.
	blockRe = regexp.MustCompile(`^(?P<space>[ \t]*)(?P<escape>;*)-{1,}8<-{1,}[ \t]*$`)
	// sectionRe matches a section delimiter inside an included file.
	sectionRe = regexp.MustCompile(`-{1,}8<-{1,}[ \t]+\[[ \t]*(?P<type>start|end)[ \t]*:[ \t]*(?P<name>[a-z][-_0-9a-z]*)[ \t]*\]`)
	// rangeRe splits a snippet path from its optional line range or section.
	rangeRe = regexp.MustCompile(`^(?P<path>.*?)(?::(?P<from>[0-9]*))?(?::(?P<to>[0-9]*))?$`)
)

// MissingError reports a snippet path that resolved to no file, or a named
// section absent from the resolved file.
type MissingError struct {
	// Path is the snippet reference as written.
	Path string
	// Section is set when the file exists but the section does not.
	Section string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("snippet section %q not found in %q", e.Section, e.Path)
	}
	return fmt.Sprintf("snippet %q not found", e.Path)
}

// Resolver expands snippet markers against a set of base paths.
type Resolver struct {
	// BasePaths are tried in order when resolving a snippet path.
	BasePaths []string

	// Check makes unresolvable snippets a build error. When unset, a
	// missing snippet expands to nothing.
	Check bool
}

// Process expands every snippet marker in text. Lines that are not markers
// pass through untouched, so documents without snippets are returned
// byte-identical.
func (r *Resolver) Process(text string) (string, error) {
	out, err := r.process(strings.Split(text, "\n"), 0)
	if err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

func (r *Resolver) process(lines []string, depth int) ([]string, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("snippet: includes nested deeper than %d levels", maxDepth)
	}

	var out []string
	inBlock := false

	for _, line := range lines {
		if m := match(blockRe, line); m != nil {
			if m["escape"] != "" {
				out = append(out, unescape(line))
				continue
			}
			inBlock = !inBlock
			continue
		}

		if inBlock {
			ref := strings.TrimSpace(line)
			if ref == "" {
				continue
			}
			included, err := r.include(ref, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}

		if m := match(inlineRe, line); m != nil {
			if m["escape"] != "" {
				out = append(out, unescape(line))
				continue
			}
			ref := m["dq"]
			if ref == "" {
				ref = m["sq"]
			}
			included, err := r.include(ref, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}

		out = append(out, line)
	}

	return out, nil
}

// include resolves one snippet reference and returns its expanded lines.
func (r *Resolver) include(ref string, depth int) ([]string, error) {
	path, section, from, to := splitRef(ref)

	resolved, ok := r.lookup(path)
	if !ok {
		if r.Check {
			return nil, &MissingError{Path: ref}
		}
		return nil, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("snippet: read %s: %w", resolved, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	switch {
	case section != "":
		lines, ok = extractSection(lines, section)
		if !ok {
			if r.Check {
				return nil, &MissingError{Path: path, Section: section}
			}
			return nil, nil
		}
	case from > 0 || to > 0:
		lines = sliceRange(lines, from, to)
	default:
		lines = stripSectionMarkers(lines)
	}

	return r.process(lines, depth+1)
}

// lookup tries the reference against each base path in order.
func (r *Resolver) lookup(path string) (string, bool) {
	bases := r.BasePaths
	if len(bases) == 0 {
		bases = []string{"."}
	}
	for _, base := range bases {
		candidate := filepath.Join(base, path)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// splitRef separates a snippet reference into its path and either a named
// section or a 1-based inclusive line range. "file.md:3:10" selects lines,
// "file.md:intro" selects a section, a bare path selects the whole file.
func splitRef(ref string) (path, section string, from, to int) {
	m := match(rangeRe, ref)
	path = m["path"]

	first, second := m["from"], m["to"]
	if first == "" && second == "" {
		// No numeric range. A single non-numeric suffix is a section name.
		if i := strings.LastIndex(ref, ":"); i > 0 && !strings.ContainsAny(ref[i+1:], "/\\") && ref[i+1:] != "" {
			if _, err := strconv.Atoi(ref[i+1:]); err != nil {
				return ref[:i], ref[i+1:], 0, 0
			}
		}
		return path, "", 0, 0
	}

	from, _ = strconv.Atoi(first)
	to, _ = strconv.Atoi(second)
	return path, "", from, to
}

// sliceRange returns the 1-based inclusive range [from, to] of lines, with
// zero bounds meaning "from the start" and "to the end" respectively.
func sliceRange(lines []string, from, to int) []string {
	if from <= 0 {
		from = 1
	}
	if to <= 0 || to > len(lines) {
		to = len(lines)
	}
	if from > len(lines) || from > to {
		return nil
	}
	return lines[from-1 : to]
}

// extractSection returns the lines between the section's start and end
// markers, with all marker lines removed.
func extractSection(lines []string, name string) ([]string, bool) {
	var out []string
	found := false
	inside := false

	for _, line := range lines {
		if m := match(sectionRe, line); m != nil {
			if m["name"] == name {
				switch m["type"] {
				case "start":
					inside = true
					found = true
				case "end":
					inside = false
				}
			}
			continue
		}
		if inside {
			out = append(out, line)
		}
	}

	return out, found
}

// stripSectionMarkers removes section delimiter lines from a whole-file
// include so the markers never leak into rendered output.
func stripSectionMarkers(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if sectionRe.MatchString(line) && strings.TrimSpace(stripMarker(line)) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func stripMarker(line string) string {
	return sectionRe.ReplaceAllString(line, "")
}

// unescape drops the escaping semicolon so an escaped marker renders as the
// literal marker text.
func unescape(line string) string {
	return strings.Replace(line, ";", "", 1)
}

// match returns the named submatches of re against s, or nil.
func match(re *regexp.Regexp, s string) map[string]string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	names := re.SubexpNames()
	out := make(map[string]string, len(names))
	for i, name := range names {
		if name != "" {
			out[name] = m[i]
		}
	}
	return out
}
