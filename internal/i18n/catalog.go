package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Translator turns a message key into display text for a language.
type Translator interface {
	T(lang, key string) string
}

// Catalog holds one flat key/text table per language. Lookups fall back to the
// default language, then to the key itself.
type Catalog struct {
	tables   map[string]map[string]string
	fallback string
	tags     []language.Tag
	matcher  language.Matcher
}

// Load reads the embedded locale files. fallback must be one of them.
func Load(fallback string) (*Catalog, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	tables := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		raw, err := locales.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		tables[strings.TrimSuffix(e.Name(), ".yaml")] = table
	}
	return newCatalog(tables, fallback)
}

func newCatalog(tables map[string]map[string]string, fallback string) (*Catalog, error) {
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("i18n: no catalog for fallback language %q", fallback)
	}
	names := make([]string, 0, len(tables))
	for name := range tables {
		if name != fallback {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	// the matcher prefers the first tag when nothing matches
	names = append([]string{fallback}, names...)

	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("i18n: catalog %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return &Catalog{
		tables:   tables,
		fallback: fallback,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// T returns the text for key in lang.
func (c *Catalog) T(lang, key string) string {
	if s, ok := c.tables[lang][key]; ok {
		return s
	}
	if s, ok := c.tables[c.fallback][key]; ok {
		return s
	}
	return key
}

// Has reports whether the fallback catalog defines key.
func (c *Catalog) Has(key string) bool {
	_, ok := c.tables[c.fallback][key]
	return ok
}

// Fallback is the default language.
func (c *Catalog) Fallback() string { return c.fallback }

// Languages lists the supported languages, default first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the best supported language for an explicit choice or an
// Accept-Language header value. Unknown input yields the default language.
func (c *Catalog) Match(preferred ...string) string {
	var want []language.Tag
	for _, p := range preferred {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		want = append(want, tags...)
	}
	if len(want) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(want...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx].String()
}
