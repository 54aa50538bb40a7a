// Package semver implements parsing and ordering of Semantic Versioning
// 2.0.0 version identifiers, as used in release tags and changelog headings.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// A Version is a parsed semantic version.
//
// Pre-release identifiers are numeric-or-alphanumeric, which is exactly what
// intstr.IntOrString models; numeric identifiers order before and among
// themselves numerically, alphanumeric ones lexically.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   []intstr.IntOrString
	Build []string
}

// The grammar from semver.org, as its reference regular expression; a leading
// "v" is tolerated because git tags so often carry one.
var versionRe = regexp.MustCompile(`^v?` +
	`(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)` +
	`(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Parse parses a version string.  Numeric fields must not have leading
// zeros; empty identifiers are invalid.
func Parse(str string) (*Version, error) {
	match := versionRe.FindStringSubmatch(strings.TrimSpace(str))
	if match == nil {
		return nil, fmt.Errorf("semver.Parse: invalid version: %q", str)
	}

	var ver Version
	var err error
	if ver.Major, err = strconv.Atoi(match[1]); err != nil {
		return nil, fmt.Errorf("semver.Parse: %q: %w", str, err)
	}
	if ver.Minor, err = strconv.Atoi(match[2]); err != nil {
		return nil, fmt.Errorf("semver.Parse: %q: %w", str, err)
	}
	if ver.Patch, err = strconv.Atoi(match[3]); err != nil {
		return nil, fmt.Errorf("semver.Parse: %q: %w", str, err)
	}
	if match[4] != "" {
		for _, id := range strings.Split(match[4], ".") {
			pre, err := parseIdentifier(id)
			if err != nil {
				return nil, fmt.Errorf("semver.Parse: %q: %w", str, err)
			}
			ver.Pre = append(ver.Pre, pre)
		}
	}
	if match[5] != "" {
		ver.Build = strings.Split(match[5], ".")
	}
	return &ver, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// parseIdentifier parses one pre-release identifier.  Numeric identifiers are
// bounded by what intstr.IntOrString can hold (an int32); anything larger is
// rejected rather than silently truncated, which would corrupt both rendering
// and ordering.  The regexp already rejected leading zeros.
func parseIdentifier(id string) (intstr.IntOrString, error) {
	if !isDigits(id) {
		return intstr.FromString(id), nil
	}
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return intstr.IntOrString{}, fmt.Errorf("numeric identifier %q out of range", id)
	}
	return intstr.FromInt(int(n)), nil
}

// String implements fmt.Stringer, rendering the canonical (un-prefixed) form.
func (ver Version) String() string {
	ret := new(strings.Builder)
	fmt.Fprintf(ret, "%d.%d.%d", ver.Major, ver.Minor, ver.Patch)
	if len(ver.Pre) > 0 {
		ids := make([]string, len(ver.Pre))
		for i, id := range ver.Pre {
			ids[i] = id.String()
		}
		fmt.Fprintf(ret, "-%s", strings.Join(ids, "."))
	}
	if len(ver.Build) > 0 {
		fmt.Fprintf(ret, "+%s", strings.Join(ver.Build, "."))
	}
	return ret.String()
}

// GoString implements fmt.GoStringer.
func (ver Version) GoString() string {
	return fmt.Sprintf("semver.Version{Major:%d, Minor:%d, Patch:%d, Pre:%#v, Build:%#v}",
		ver.Major, ver.Minor, ver.Patch, ver.Pre, ver.Build)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpIdentifier(a, b intstr.IntOrString) int {
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return cmpInt(a.IntValue(), b.IntValue())
	case a.Type == intstr.Int:
		// Numeric identifiers order before alphanumeric ones.
		return -1
	case b.Type == intstr.Int:
		return 1
	default:
		return strings.Compare(a.StrVal, b.StrVal)
	}
}

// Cmp compares two versions per semver precedence, returning -1, 0, or 1.
// Build metadata is ignored.
func (ver Version) Cmp(other Version) int {
	if d := cmpInt(ver.Major, other.Major); d != 0 {
		return d
	}
	if d := cmpInt(ver.Minor, other.Minor); d != 0 {
		return d
	}
	if d := cmpInt(ver.Patch, other.Patch); d != 0 {
		return d
	}

	// A pre-release orders before the release it precedes.
	switch {
	case len(ver.Pre) == 0 && len(other.Pre) == 0:
		return 0
	case len(ver.Pre) == 0:
		return 1
	case len(other.Pre) == 0:
		return -1
	}
	for i := 0; i < len(ver.Pre) && i < len(other.Pre); i++ {
		if d := cmpIdentifier(ver.Pre[i], other.Pre[i]); d != 0 {
			return d
		}
	}
	// A longer identifier list orders after its prefix.
	return cmpInt(len(ver.Pre), len(other.Pre))
}
