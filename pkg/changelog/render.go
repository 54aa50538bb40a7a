package changelog

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

func (rel Release) heading() string {
	ret := new(strings.Builder)
	if rel.Unreleased {
		ret.WriteString("## [Unreleased]")
	} else {
		fmt.Fprintf(ret, "## [%s]", rel.Version)
	}
	if rel.Date != "" {
		fmt.Fprintf(ret, " - %s", rel.Date)
	}
	if rel.Yanked {
		ret.WriteString(" [YANKED]")
	}
	return ret.String()
}

// Render writes the changelog in canonical form.  Rendering a parsed
// changelog and parsing it again yields the same model.
func (c *Changelog) Render(writer io.Writer) error {
	ret := new(strings.Builder)

	if c.Title != "" {
		fmt.Fprintf(ret, "# %s\n", c.Title)
	}
	if c.Preamble != "" {
		fmt.Fprintf(ret, "\n%s\n", c.Preamble)
	}

	for _, rel := range c.Releases {
		fmt.Fprintf(ret, "\n%s\n", rel.heading())
		for _, section := range rel.Sections {
			fmt.Fprintf(ret, "\n### %s\n\n", section.Kind)
			for _, item := range section.Items {
				fmt.Fprintf(ret, "- %s\n", item)
			}
		}
	}

	if len(c.LinkRefs) > 0 {
		names := make([]string, 0, len(c.LinkRefs))
		for name := range c.LinkRefs {
			names = append(names, name)
		}
		sort.Strings(names)
		ret.WriteString("\n")
		for _, name := range names {
			fmt.Fprintf(ret, "[%s]: %s\n", name, c.LinkRefs[name])
		}
	}

	_, err := io.WriteString(writer, ret.String())
	return err
}
