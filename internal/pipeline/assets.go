// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"path/filepath"
)

// versionCSS styles the footer badge that shows which compiler version
// rendered the site. The value is baked in at build time so the static
// output needs no runtime lookup.
const versionCSS = `/* generated by juvixdoc; do not edit */
.juvix-version::after {
  content: "Juvix v%s";
  font-size: 0.75rem;
  opacity: 0.7;
}
`

// WriteVersionAssets writes the compiler-version stylesheet into the output
// tree. An empty version writes nothing.
func (p *Pipeline) WriteVersionAssets(version string) error {
	if version == "" {
		return nil
	}
	path := filepath.Join(p.cfg.OutputDir, "assets", "css", "juvix-version.css")
	return writeFile(path, []byte(fmt.Sprintf(versionCSS, version)))
}
