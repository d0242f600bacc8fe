// Package listing turns the HTML of a web server directory listing into the
// archives the fetch pipeline should download.
package listing

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/handiism/rom-archiver/internal/model"
	"golang.org/x/net/html"
)

const parentDir = "../"

// Extract returns the archives linked from page, in document order.
//
// A link is kept when its href:
//   - does not end with "/" (directories) and is not the parent directory
//   - ends with model.ArchiveExtension
//   - has a decoded file name matched by region
//
// Relative hrefs are resolved against baseURL so every returned URL is
// absolute. Links that decode to a file name already seen are dropped, since
// both would be written to the same destination.
//
// Example:
//
//	tasks, err := listing.Extract(page, "https://example.org/roms/", model.RegionUSA)
//	// <a href="Super%20Game%20%28USA%29.zip"> yields
//	// {URL: "https://example.org/roms/Super%20Game%20%28USA%29.zip", FileName: "Super Game (USA).zip"}
func Extract(page []byte, baseURL string, region model.Region) ([]model.DownloadTask, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("could not parse listing: %w", err)
	}

	var tasks []model.DownloadTask
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := attr(n, "href"); ok {
				if task, ok := taskFor(base, href, region); ok {
					if _, dup := seen[task.FileName]; !dup {
						seen[task.FileName] = struct{}{}
						tasks = append(tasks, task)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return tasks, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func taskFor(base *url.URL, href string, region model.Region) (model.DownloadTask, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasSuffix(href, "/") || href == parentDir || href == ".." {
		return model.DownloadTask{}, false
	}
	if !strings.HasSuffix(href, model.ArchiveExtension) {
		return model.DownloadTask{}, false
	}

	fileName := DecodeFileName(href)
	if !region.Matches(fileName) {
		return model.DownloadTask{}, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return model.DownloadTask{}, false
	}

	return model.DownloadTask{
		URL:      base.ResolveReference(ref).String(),
		FileName: fileName,
	}, true
}

// DecodeFileName returns the percent-decoded last path segment of href.
//
// Malformed escapes leave the segment as written. Separators that only appear
// after decoding (%2F) are replaced with "_" so the result is always a single
// path element.
//
// Example:
//
//	DecodeFileName("/roms/Super%20Game%20%28USA%29.zip") // "Super Game (USA).zip"
func DecodeFileName(href string) string {
	segment := path.Base(href)
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		decoded = segment
	}
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "_").Replace(decoded)
}
