// Package harvest collects the images referenced by an HTML document.
// Direct references are returned as absolute URLs; blob references are
// downloaded and inlined as data URLs.
package harvest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type Harvester struct {
	fetcher     Fetcher
	concurrency int
}

type Option func(*Harvester)

// WithConcurrency bounds the number of blob references resolved at once.
func WithConcurrency(concurrency int) Option {
	return func(h *Harvester) {
		h.concurrency = concurrency
	}
}

func New(fetcher Fetcher, options ...Option) *Harvester {
	h := &Harvester{
		fetcher:     fetcher,
		concurrency: defaultConcurrency,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// HarvestURL fetches the page and harvests its images.
func (h *Harvester) HarvestURL(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}
	if err := checkTarget(base); err != nil {
		return nil, err
	}
	page, _, err := h.fetcher.Fetch(ctx, base.String())
	if err != nil {
		return nil, err
	}
	return h.Harvest(ctx, bytes.NewReader(page), base)
}

// Harvest returns the document's visible images in document order. All
// references are resolved before the result is built; references that fail
// to resolve are logged and skipped.
func (h *Harvester) Harvest(ctx context.Context, document io.Reader, base *url.URL) ([]string, error) {
	sources, err := Sources(document)
	if err != nil {
		return nil, err
	}

	resolved := make([]string, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)
	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			reference, err := h.resolve(groupCtx, source, base)
			if err != nil {
				log.Warn().Err(err).Str("src", source).Msg("Failed to resolve image, skipping")
				return nil
			}
			resolved[i] = reference
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	images := make([]string, 0, len(resolved))
	for _, reference := range resolved {
		if reference != "" {
			images = append(images, reference)
		}
	}
	return images, nil
}

func (h *Harvester) resolve(ctx context.Context, source string, base *url.URL) (string, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		return source, nil
	case strings.HasPrefix(source, "blob:"):
		target, err := url.Parse(strings.TrimPrefix(source, "blob:"))
		if err != nil {
			return "", fmt.Errorf("invalid blob URL: %w", err)
		}
		if err := checkTarget(target); err != nil {
			return "", err
		}
		data, mimeType, err := h.fetcher.Fetch(ctx, target.String())
		if err != nil {
			return "", err
		}
		return DataURL(data, mimeType), nil
	}

	reference, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}
	if base != nil {
		reference = base.ResolveReference(reference)
	}
	return reference.String(), nil
}

// Sources lists the src attribute of every visible <img>, in document order.
func Sources(document io.Reader) ([]string, error) {
	root, err := html.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	sources := []string{}
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == atom.Img && isVisible(node) {
			if src := strings.TrimSpace(attribute(node, "src")); src != "" {
				sources = append(sources, src)
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return sources, nil
}

func isVisible(node *html.Node) bool {
	for _, attr := range node.Attr {
		if attr.Key == "hidden" {
			return false
		}
	}
	style := strings.ReplaceAll(strings.ToLower(attribute(node, "style")), " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}

func attribute(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
