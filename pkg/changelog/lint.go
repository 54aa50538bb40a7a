package changelog

import (
	"fmt"
	"time"
)

// Lint checks the conventions that Parse is deliberately lenient about:
// newest-first ordering, no duplicate versions, dates on released entries, a
// single leading Unreleased entry, and known section kinds.
func (c *Changelog) Lint() []error {
	var errs []error
	complain := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Title == "" {
		complain("missing changelog title")
	}

	unreleased := 0
	for i := range c.Releases {
		rel := &c.Releases[i]

		if rel.Unreleased {
			unreleased++
			if i != 0 {
				complain("entry %d: [Unreleased] must be the first entry", i)
			}
			if rel.Date != "" {
				complain("entry %d: [Unreleased] must not have a date", i)
			}
		} else {
			if rel.Date == "" {
				complain("version %s: missing release date", rel.Version)
			} else if _, err := time.Parse("2006-01-02", rel.Date); err != nil {
				complain("version %s: bad release date %q", rel.Version, rel.Date)
			}
		}

		for _, section := range rel.Sections {
			if !knownKinds[section.Kind] {
				complain("%s: unknown section kind %q", describe(rel), section.Kind)
			}
			if len(section.Items) == 0 {
				complain("%s: empty section %q", describe(rel), section.Kind)
			}
		}

		if i == 0 || rel.Unreleased || c.Releases[i-1].Unreleased {
			continue
		}
		prev := &c.Releases[i-1]
		switch d := prev.Version.Cmp(*rel.Version); {
		case d == 0:
			complain("version %s: duplicate entry", rel.Version)
		case d < 0:
			complain("version %s: out of order (newest entries come first)", rel.Version)
		}
	}
	if unreleased > 1 {
		complain("multiple [Unreleased] entries")
	}

	return errs
}

func describe(rel *Release) string {
	if rel.Unreleased {
		return "[Unreleased]"
	}
	return "version " + rel.Version.String()
}
