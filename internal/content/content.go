// Package content loads the page copy that surrounds the calculators:
// per-calculator descriptions and FAQs, markdown articles, and the SEO
// metadata (breadcrumbs, JSON-LD, sitemap) derived from them.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/straye-as/concrete-calc/internal/calc"
	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when a calculator page or article does not exist
var ErrNotFound = errors.New("content not found")

// FAQ is one question and answer shown on a calculator page
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// CalculatorPage is the copy for one calculator
type CalculatorPage struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Related     []string `yaml:"related"`
	FAQs        []FAQ    `yaml:"faqs"`
}

// Store holds the parsed content. It is read-only after Load.
type Store struct {
	pages    []CalculatorPage
	pageBy   map[string]*CalculatorPage
	articles []Article
	byArt    map[string]*Article
}

// New loads the content compiled into the binary
func New() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads calculators.yaml and articles/*.md from fsys. Every registered
// calculator must have a page and every reference must resolve.
func Load(fsys fs.FS) (*Store, error) {
	raw, err := fs.ReadFile(fsys, "calculators.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read calculator pages: %w", err)
	}

	var pages []CalculatorPage
	if err := yaml.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse calculator pages: %w", err)
	}

	s := &Store{
		pageBy: make(map[string]*CalculatorPage, len(pages)),
		byArt:  make(map[string]*Article),
	}

	seen := make(map[string]CalculatorPage, len(pages))
	for _, p := range pages {
		if _, err := calc.Lookup(p.Slug); err != nil {
			return nil, fmt.Errorf("calculator page %q: %w", p.Slug, err)
		}
		if _, dup := seen[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate calculator page %q", p.Slug)
		}
		seen[p.Slug] = p
	}

	// registry order keeps listings stable
	for _, c := range calc.Calculators() {
		p, ok := seen[c.Slug]
		if !ok {
			return nil, fmt.Errorf("calculator %q has no page", c.Slug)
		}
		s.pages = append(s.pages, p)
	}
	for i := range s.pages {
		s.pageBy[s.pages[i].Slug] = &s.pages[i]
	}
	for _, p := range s.pages {
		for _, rel := range p.Related {
			if _, ok := s.pageBy[rel]; !ok {
				return nil, fmt.Errorf("calculator page %q: unknown related calculator %q", p.Slug, rel)
			}
		}
	}

	files, err := fs.Glob(fsys, "articles/*.md")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		a, err := ParseArticle(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if a.Slug == "" {
			a.Slug = strings.TrimSuffix(path.Base(name), ".md")
		}
		for _, prev := range s.articles {
			if prev.Slug == a.Slug {
				return nil, fmt.Errorf("duplicate article slug %q", a.Slug)
			}
		}
		for _, ref := range a.Calculators {
			if _, ok := s.pageBy[ref]; !ok {
				return nil, fmt.Errorf("article %q: unknown calculator %q", a.Slug, ref)
			}
		}
		s.articles = append(s.articles, *a)
	}

	sort.SliceStable(s.articles, func(i, j int) bool {
		return s.articles[i].Published.After(s.articles[j].Published)
	})
	for i := range s.articles {
		s.byArt[s.articles[i].Slug] = &s.articles[i]
	}

	return s, nil
}

// Catalog returns every calculator page in registry order
func (s *Store) Catalog() []CalculatorPage {
	out := make([]CalculatorPage, len(s.pages))
	copy(out, s.pages)
	return out
}

// Calculator returns the page for slug
func (s *Store) Calculator(slug string) (*CalculatorPage, error) {
	p, ok := s.pageBy[slug]
	if !ok {
		return nil, fmt.Errorf("%w: calculator %q", ErrNotFound, slug)
	}
	cp := *p
	return &cp, nil
}

// FAQs returns the questions shown on a calculator page
func (s *Store) FAQs(slug string) ([]FAQ, error) {
	p, err := s.Calculator(slug)
	if err != nil {
		return nil, err
	}
	return p.FAQs, nil
}

// Articles returns articles newest first, optionally filtered by tag
func (s *Store) Articles(tag string) []Article {
	tag = strings.ToLower(strings.TrimSpace(tag))
	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		if tag == "" || a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

// Article returns the article published under slug
func (s *Store) Article(slug string) (*Article, error) {
	a, ok := s.byArt[slug]
	if !ok {
		return nil, fmt.Errorf("%w: article %q", ErrNotFound, slug)
	}
	cp := *a
	return &cp, nil
}

// ArticlesFor returns articles that reference the calculator
func (s *Store) ArticlesFor(calculator string) []Article {
	var out []Article
	for _, a := range s.articles {
		for _, c := range a.Calculators {
			if c == calculator {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
