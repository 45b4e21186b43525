package content

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const schemaContext = "https://schema.org"

// Crumb is one step of a breadcrumb trail. URL is absolute once resolved.
type Crumb struct {
	Name string
	URL  string
}

// Breadcrumbs prefixes the trail with Home and resolves relative paths
// against baseURL.
func Breadcrumbs(baseURL string, trail ...Crumb) []Crumb {
	out := make([]Crumb, 0, len(trail)+1)
	out = append(out, Crumb{Name: "Home", URL: absURL(baseURL, "/")})
	for _, c := range trail {
		out = append(out, Crumb{Name: c.Name, URL: absURL(baseURL, c.URL)})
	}
	return out
}

// CalculatorPath is the public page path of a calculator
func CalculatorPath(slug string) string {
	return "/calculators/" + slug
}

// ArticlePath is the public page path of an article
func ArticlePath(slug string) string {
	return "/articles/" + slug
}

// CalculatorBreadcrumbs is Home > Calculators > page
func CalculatorBreadcrumbs(baseURL string, p *CalculatorPage) []Crumb {
	return Breadcrumbs(baseURL,
		Crumb{Name: "Calculators", URL: "/calculators"},
		Crumb{Name: p.Title, URL: CalculatorPath(p.Slug)},
	)
}

// ArticleBreadcrumbs is Home > Articles > article
func ArticleBreadcrumbs(baseURL string, a *Article) []Crumb {
	return Breadcrumbs(baseURL,
		Crumb{Name: "Articles", URL: "/articles"},
		Crumb{Name: a.Title, URL: ArticlePath(a.Slug)},
	)
}

func absURL(baseURL, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(p, "/")
}

// WebApplicationLD describes a calculator page
func WebApplicationLD(baseURL, siteName string, p *CalculatorPage) map[string]any {
	return map[string]any{
		"@context":            schemaContext,
		"@type":               "WebApplication",
		"name":                p.Title,
		"description":         p.Description,
		"url":                 absURL(baseURL, CalculatorPath(p.Slug)),
		"applicationCategory": "UtilitiesApplication",
		"operatingSystem":     "Any",
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  siteName,
		},
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
		},
	}
}

// FAQPageLD returns nil when there are no questions
func FAQPageLD(faqs []FAQ) map[string]any {
	if len(faqs) == 0 {
		return nil
	}
	entities := make([]map[string]any, 0, len(faqs))
	for _, f := range faqs {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// BreadcrumbListLD positions start at 1
func BreadcrumbListLD(crumbs []Crumb) map[string]any {
	items := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// ArticleLD describes an article page
func ArticleLD(baseURL, siteName string, a *Article) map[string]any {
	ld := map[string]any{
		"@context":      schemaContext,
		"@type":         "Article",
		"headline":      a.Title,
		"description":   a.Description,
		"url":           absURL(baseURL, ArticlePath(a.Slug)),
		"datePublished": a.Published.Format(dateLayout),
		"dateModified":  a.LastModified().Format(dateLayout),
		"author": map[string]any{
			"@type": "Organization",
			"name":  siteName,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  siteName,
		},
	}
	if len(a.Tags) > 0 {
		ld["keywords"] = strings.Join(a.Tags, ", ")
	}
	return ld
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the XML sitemap of the home page, every calculator page
// and every article.
func (s *Store) Sitemap(baseURL string) ([]byte, error) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: absURL(baseURL, "/"), ChangeFreq: "weekly", Priority: "1.0"},
		sitemapURL{Loc: absURL(baseURL, "/calculators"), ChangeFreq: "weekly", Priority: "0.9"},
	)
	for _, p := range s.pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        absURL(baseURL, CalculatorPath(p.Slug)),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}
	set.URLs = append(set.URLs, sitemapURL{Loc: absURL(baseURL, "/articles"), ChangeFreq: "weekly", Priority: "0.6"})
	for _, a := range s.articles {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        absURL(baseURL, ArticlePath(a.Slug)),
			LastMod:    a.LastModified().Format(dateLayout),
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// RobotsTxt allows everything and points crawlers at the sitemap
func RobotsTxt(baseURL string) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + absURL(baseURL, "/sitemap.xml") + "\n"
}
