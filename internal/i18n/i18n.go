// Package i18n translates interface strings and page titles.
package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
)

// Catalog translates keys for the supported languages, falling back to
// English and then to the key itself.
type Catalog struct {
	uni    *ut.UniversalTranslator
	params map[string]int
}

// New loads the built-in messages.
func New() (*Catalog, error) {
	fallback := en.New()
	c := &Catalog{
		uni:    ut.New(fallback, fallback, id.New()),
		params: make(map[string]int),
	}

	for lang, msgs := range messages {
		trans, ok := c.uni.GetTranslator(lang)
		if !ok {
			return nil, fmt.Errorf("no translator for %q", lang)
		}
		for key, text := range msgs {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("loading %s message %q: %w", lang, key, err)
			}
			if n := strings.Count(text, "{"); n > c.params[key] {
				c.params[key] = n
			}
		}
	}

	for lang, msgs := range plurals {
		trans, ok := c.uni.GetTranslator(lang)
		if !ok {
			return nil, fmt.Errorf("no translator for %q", lang)
		}
		for key, forms := range msgs {
			for rule, text := range forms {
				if err := trans.AddCardinal(key, text, rule, false); err != nil {
					return nil, fmt.Errorf("loading %s plural %q: %w", lang, key, err)
				}
			}
		}
	}
	if err := c.uni.VerifyTranslations(); err != nil {
		return nil, fmt.Errorf("verifying translations: %w", err)
	}
	return c, nil
}

// MustNew is New for the built-in messages, which are known to load.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the supported language codes.
func (c *Catalog) Languages() []string {
	return []string{English, Indonesian}
}

// Has reports whether key is translated for lang.
func (c *Catalog) Has(lang, key string) bool {
	trans, ok := c.uni.GetTranslator(lang)
	if !ok {
		return false
	}
	_, err := trans.T(key, c.pad(key, nil)...)
	return err == nil
}

// T translates key into lang, substituting args for {0}, {1}, ...
func (c *Catalog) T(lang, key string, args ...any) string {
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = fmt.Sprint(a)
	}
	params = c.pad(key, params)

	for _, l := range []string{lang, English} {
		trans, ok := c.uni.GetTranslator(l)
		if !ok {
			continue
		}
		if s, err := trans.T(key, params...); err == nil {
			return s
		}
	}
	return key
}

// N translates a count-dependent key into lang, picking the plural form
// for n. Keys without plural forms go through T.
func (c *Catalog) N(lang, key string, n int) string {
	for _, l := range []string{lang, English} {
		trans, ok := c.uni.GetTranslator(l)
		if !ok {
			continue
		}
		if s, err := trans.C(key, float64(n), 0, strconv.Itoa(n)); err == nil {
			return s
		}
	}
	return c.T(lang, key, n)
}

// TranslateTitle returns the page title for path: the translation of its
// route key, or its last segment capitalized.
func (c *Catalog) TranslateTitle(lang, path string) string {
	key := RouteToKey(path)
	if c.Has(lang, key) || c.Has(English, key) {
		return c.T(lang, key)
	}

	segments := splitPath(path)
	last := "home"
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}
	return strings.ToUpper(last[:1]) + last[1:]
}

// RouteToKey turns "/dashboard/users" into "dashboard.users"; the root
// path maps to "home".
func RouteToKey(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return "home"
	}
	return strings.ToLower(strings.Join(segments, "."))
}

// pad extends params to the number of placeholders the key uses.
func (c *Catalog) pad(key string, params []string) []string {
	for len(params) < c.params[key] {
		params = append(params, "")
	}
	return params
}

func splitPath(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
