package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

var frontMatterDelim = []byte("---")

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Article is a markdown article with its front matter and rendered body
type Article struct {
	Slug        string
	Title       string
	Description string
	Published   time.Time
	Updated     *time.Time
	Tags        []string
	Calculators []string
	HTML        string
}

// LastModified is the update date, or the publish date when never updated
func (a *Article) LastModified() time.Time {
	if a.Updated != nil {
		return *a.Updated
	}
	return a.Published
}

// HasTag reports whether the article carries tag (case-insensitive)
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Published   string   `yaml:"published"`
	Updated     string   `yaml:"updated"`
	Tags        []string `yaml:"tags"`
	Calculators []string `yaml:"calculators"`
}

// ParseArticle splits the YAML front matter from the markdown body and
// renders the body to HTML.
func ParseArticle(src []byte) (*Article, error) {
	head, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	if fm.Title == "" {
		return nil, errors.New("front matter: title is required")
	}

	published, err := time.Parse(dateLayout, fm.Published)
	if err != nil {
		return nil, fmt.Errorf("front matter: invalid published date %q", fm.Published)
	}

	a := &Article{
		Slug:        fm.Slug,
		Title:       fm.Title,
		Description: fm.Description,
		Published:   published,
		Calculators: fm.Calculators,
	}
	for _, t := range fm.Tags {
		a.Tags = append(a.Tags, strings.ToLower(t))
	}
	if fm.Updated != "" {
		updated, err := time.Parse(dateLayout, fm.Updated)
		if err != nil {
			return nil, fmt.Errorf("front matter: invalid updated date %q", fm.Updated)
		}
		if updated.Before(published) {
			return nil, errors.New("front matter: updated is before published")
		}
		a.Updated = &updated
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	a.HTML = buf.String()

	return a, nil
}

func splitFrontMatter(src []byte) (head, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(src, frontMatterDelim) {
		return nil, nil, errors.New("missing front matter")
	}
	rest := src[len(frontMatterDelim):]
	rest = bytes.TrimLeft(rest, "\r\n")

	// closing delimiter must start a line
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, nil, errors.New("unterminated front matter")
	}
	head = rest[:idx]
	body = rest[idx+len("\n---"):]
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}
	return head, body, nil
}
