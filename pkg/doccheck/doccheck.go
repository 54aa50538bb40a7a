// Package doccheck validates a tree of generated HTML documentation: the
// entry page must exist and have a title, and relative references must
// resolve inside the tree.
package doccheck

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/datawire/dlib/dlog"
	"golang.org/x/net/html"
)

// A Report summarizes one documentation tree.
type Report struct {
	// Pages is the number of HTML pages found.
	Pages int
	// Title is the text of the entry page's <title>.
	Title string
	// Dangling lists relative references that do not resolve inside the
	// tree, as "page: reference" strings, sorted and deduplicated.
	Dangling []string
}

// OK reports whether the tree had no dangling references.
func (r *Report) OK() bool {
	return len(r.Dangling) == 0
}

// Check walks the documentation tree rooted at dir.  It returns an error for
// a tree that is structurally unusable (no entry page, unparsable HTML);
// dangling references are not errors, they are reported.
func Check(ctx context.Context, dir string) (*Report, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("doccheck: no HTML pages under %q", dir)
	}

	entryPage := filepath.Join(dir, "index.html")
	if _, err := os.Stat(entryPage); err != nil {
		return nil, fmt.Errorf("doccheck: missing entry page: %w", err)
	}

	report := &Report{
		Pages: len(pages),
	}

	entryDoc, err := parsePage(entryPage)
	if err != nil {
		return nil, err
	}
	report.Title = strings.TrimSpace(innerText(find(entryDoc, "title")))
	if report.Title == "" {
		return nil, fmt.Errorf("doccheck: entry page %q has no title", entryPage)
	}

	dangling := make(map[string]bool)
	for _, page := range pages {
		doc, err := parsePage(page)
		if err != nil {
			return nil, err
		}
		for _, ref := range references(doc) {
			target, local := resolve(dir, page, ref)
			if !local {
				continue // external or non-file reference
			}
			broken := target == ""
			if !broken {
				_, err := os.Stat(target)
				broken = err != nil
			}
			if broken {
				relPage, _ := filepath.Rel(dir, page)
				dlog.Warnf(ctx, "%s: dangling reference %q", relPage, ref)
				dangling[relPage+": "+ref] = true
			}
		}
	}
	for ref := range dangling {
		report.Dangling = append(report.Dangling, ref)
	}
	sort.Strings(report.Dangling)

	return report, nil
}

func parsePage(filename string) (*html.Node, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	doc, err := html.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("doccheck: parse %q: %w", filename, err)
	}
	return doc, nil
}

// find returns the first element with the given tag, depth-first.
func find(node *html.Node, tag string) *html.Node {
	if node.Type == html.ElementNode && node.Data == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := find(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func innerText(node *html.Node) string {
	if node == nil {
		return ""
	}
	var ret strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			ret.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return ret.String()
}

// references collects the href and src attribute values in a page.
func references(doc *html.Node) []string {
	var refs []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, attr := range node.Attr {
				if attr.Namespace == "" && (attr.Key == "href" || attr.Key == "src") {
					refs = append(refs, attr.Val)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return refs
}

// resolve maps a reference found in page to a filesystem path under dir.  It
// returns local=false for references that are not local files: absolute URLs,
// scheme-relative URLs, and bare fragments.  A local reference that climbs
// out of the tree resolves to target="", which is always dangling; a file
// outside the tree does not ship with the documentation even if it happens to
// exist on this host.
func resolve(dir, page, ref string) (target string, local bool) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if refURL.Scheme != "" || refURL.Host != "" || refURL.Path == "" {
		return "", false
	}
	if path.IsAbs(refURL.Path) {
		return "", false
	}
	target = filepath.Join(filepath.Dir(page), filepath.FromSlash(refURL.Path))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", true
	}
	return target, true
}
