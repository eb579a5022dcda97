// SPDX-License-Identifier: MPL-2.0

package wikilink

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// BrokenError reports a wiki link whose alias matches no indexed page.
type BrokenError struct {
	Page  string
	Alias string
	Line  int
}

func (e *BrokenError) Error() string {
	return fmt.Sprintf("%s:%d: no page found for wiki link [[%s]]", e.Page, e.Line, e.Alias)
}

// Broken locates an unresolvable wiki link on a page.
type Broken struct {
	Alias string
	// Line is the 1-based page line the link appears on.
	Line int
}

// Index maps page aliases to output-relative paths. A page is linkable by
// every alias its front matter declares and by its first top-level heading.
type Index struct {
	targets map[string]string
}

// NewIndex returns an empty alias index.
func NewIndex() *Index {
	return &Index{targets: make(map[string]string)}
}

// Add registers outPath under alias. The first page to claim an alias
// keeps it.
func (x *Index) Add(alias, outPath string) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return
	}
	if _, taken := x.targets[alias]; !taken {
		x.targets[alias] = outPath
	}
}

// IndexPage registers outPath under every alias the page declares.
func (x *Index) IndexPage(outPath, text string) {
	for _, alias := range PageAliases(text) {
		x.Add(alias, outPath)
	}
}

// Len reports how many aliases are registered.
func (x *Index) Len() int {
	return len(x.targets)
}

var linkRe = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|([^\[\]]+))?\]\]`)

// Resolve rewrites [[Alias]] and [[Alias|label]] occurrences in text into
// relative Markdown links from the page at fromOut. Lines inside code
// fences are left alone. Unresolvable links collapse to their label text
// and are returned for reporting.
func (x *Index) Resolve(fromOut, text string) (string, []Broken) {
	if !strings.Contains(text, "[[") {
		return text, nil
	}

	var broken []Broken
	lines := strings.Split(text, "\n")
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.Contains(line, "[[") {
			continue
		}
		lines[i] = linkRe.ReplaceAllStringFunc(line, func(match string) string {
			sub := linkRe.FindStringSubmatch(match)
			alias := strings.TrimSpace(sub[1])
			label := alias
			if sub[2] != "" {
				label = strings.TrimSpace(sub[2])
			}
			target, ok := x.targets[alias]
			if !ok {
				broken = append(broken, Broken{Alias: alias, Line: i + 1})
				return label
			}
			return fmt.Sprintf("[%s](%s)", label, relTo(fromOut, target))
		})
	}
	return strings.Join(lines, "\n"), broken
}

// relTo builds the link from one output page to another. Both paths are
// slash-separated and relative to the output root, so climbing out of the
// source page's directory reaches the root.
func relTo(fromOut, target string) string {
	dir := path.Dir(fromOut)
	if dir == "." {
		return target
	}
	return strings.Repeat("../", strings.Count(dir, "/")+1) + target
}

// PageAliases extracts the names a page can be linked by: every alias in
// its front matter plus its first top-level heading.
func PageAliases(text string) []string {
	var aliases []string
	body := text
	if fm, rest, ok := frontMatter(text); ok {
		aliases = append(aliases, metaAliases(fm)...)
		body = rest
	}
	if title := firstHeading(body); title != "" {
		aliases = append(aliases, title)
	}
	return aliases
}

// frontMatter splits a leading "---" delimited YAML block from the page.
func frontMatter(text string) (fm, body string, ok bool) {
	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return "", text, false
	}
	fm, body, ok = strings.Cut(rest, "\n---\n")
	if !ok {
		return "", text, false
	}
	return fm, body, true
}

// metaAliases reads the alias front-matter key, which may be a string, a
// list of strings, or a mapping with a name field. Unparsable front matter
// yields no aliases rather than an error; the heading fallback still
// applies.
func metaAliases(fm string) []string {
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return nil
	}
	switch v := meta["alias"].(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return []string{name}
		}
	}
	return nil
}

func firstHeading(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.Trim(strings.TrimSpace(title), "'\"`")
		}
	}
	return ""
}
