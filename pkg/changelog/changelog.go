// Package changelog models a "Keep a Changelog" style CHANGELOG.md: a title,
// some prose, a newest-first list of releases with categorized change lists,
// and trailing link references.
package changelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alphaville/numtest/pkg/semver"
)

// Section kinds defined by keepachangelog.com; Parse preserves unknown kinds,
// Lint flags them.
var knownKinds = map[string]bool{
	"Added":      true,
	"Changed":    true,
	"Deprecated": true,
	"Removed":    true,
	"Fixed":      true,
	"Security":   true,
}

type Changelog struct {
	Title    string
	Preamble string
	Releases []Release
	LinkRefs map[string]string
}

type Release struct {
	// Version is nil iff Unreleased is set.
	Version    *semver.Version
	Unreleased bool
	// Date is the "2006-01-02" heading date, kept as written; it may be
	// empty, which Lint flags for released entries.
	Date     string
	Yanked   bool
	Sections []Section
}

type Section struct {
	Kind  string
	Items []string
}

var (
	releaseRe = regexp.MustCompile(`^##\s+\[?([^\[\]\s]+)\]?` +
		`(?:\s+-\s+(\S+))?` +
		`(?:\s+(\[YANKED\]))?\s*$`)
	sectionRe = regexp.MustCompile(`^###\s+(\S.*?)\s*$`)
	itemRe    = regexp.MustCompile(`^[-*]\s+(\S.*?)\s*$`)
	linkRefRe = regexp.MustCompile(`^\[([^\]]+)\]:\s*(\S+)\s*$`)
)

// Parse reads a changelog.  It is strict about release headings (a heading
// that is neither "Unreleased" nor a parsable version is an error) and
// lenient about prose: anything before the first release heading is the
// title and preamble.
func Parse(reader io.Reader) (*Changelog, error) {
	ret := &Changelog{
		LinkRefs: make(map[string]string),
	}

	var release *Release
	var section *Section
	var preamble []string

	lineno := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		switch {
		case strings.HasPrefix(line, "### "):
			if release == nil {
				return nil, fmt.Errorf("changelog.Parse: line %d: section outside of a release", lineno)
			}
			match := sectionRe.FindStringSubmatch(line)
			if match == nil {
				return nil, fmt.Errorf("changelog.Parse: line %d: malformed section heading %q", lineno, line)
			}
			release.Sections = append(release.Sections, Section{
				Kind: match[1],
			})
			section = &release.Sections[len(release.Sections)-1]
		case strings.HasPrefix(line, "## "):
			match := releaseRe.FindStringSubmatch(line)
			if match == nil {
				return nil, fmt.Errorf("changelog.Parse: line %d: malformed release heading %q", lineno, line)
			}
			rel := Release{
				Date:   match[2],
				Yanked: match[3] != "",
			}
			if strings.EqualFold(match[1], "unreleased") {
				rel.Unreleased = true
			} else {
				ver, err := semver.Parse(match[1])
				if err != nil {
					return nil, fmt.Errorf("changelog.Parse: line %d: %w", lineno, err)
				}
				rel.Version = ver
			}
			ret.Releases = append(ret.Releases, rel)
			release = &ret.Releases[len(ret.Releases)-1]
			section = nil
		case strings.HasPrefix(line, "# "):
			if release == nil && ret.Title == "" {
				ret.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			} else {
				return nil, fmt.Errorf("changelog.Parse: line %d: unexpected title %q", lineno, line)
			}
		case itemRe.MatchString(line):
			if section == nil {
				if release == nil {
					preamble = append(preamble, line)
					continue
				}
				return nil, fmt.Errorf("changelog.Parse: line %d: change item outside of a section", lineno)
			}
			section.Items = append(section.Items, itemRe.FindStringSubmatch(line)[1])
		case linkRefRe.MatchString(line):
			match := linkRefRe.FindStringSubmatch(line)
			ret.LinkRefs[match[1]] = match[2]
		case strings.TrimSpace(line) == "":
			// blank
		default:
			switch {
			case section != nil && len(section.Items) > 0:
				// continuation of the previous item
				section.Items[len(section.Items)-1] += " " + strings.TrimSpace(line)
			case release == nil:
				preamble = append(preamble, line)
			default:
				return nil, fmt.Errorf("changelog.Parse: line %d: stray text %q", lineno, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("changelog.Parse: %w", err)
	}
	if ret.Title == "" && len(ret.Releases) == 0 {
		return nil, fmt.Errorf("changelog.Parse: empty document")
	}

	ret.Preamble = strings.Join(preamble, "\n")
	return ret, nil
}

// Latest returns the newest released (non-Unreleased) entry, or nil if there
// is none.  It goes by version order, not file order, so it gives the right
// answer even for a changelog that Lint would reject.
func (c *Changelog) Latest() *Release {
	var ret *Release
	for i := range c.Releases {
		rel := &c.Releases[i]
		if rel.Unreleased {
			continue
		}
		if ret == nil || rel.Version.Cmp(*ret.Version) > 0 {
			ret = rel
		}
	}
	return ret
}

// Find returns the release with the given version, or nil.
func (c *Changelog) Find(ver semver.Version) *Release {
	for i := range c.Releases {
		rel := &c.Releases[i]
		if !rel.Unreleased && rel.Version.Cmp(ver) == 0 {
			return rel
		}
	}
	return nil
}
