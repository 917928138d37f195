package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const localeKey = "i18n_localizer"

// Args carries interpolation values for message templates.
type Args map[string]any

// Translator holds the loaded catalogs and negotiates a locale per request.
// It is constructed once and passed in as a dependency.
type Translator struct {
	catalogs map[string]map[string]string
	matcher  language.Matcher
	fallback string
}

// New loads the embedded catalogs. English is the fallback locale.
func New() (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	catalogs := make(map[string]map[string]string, len(entries))
	tags := []language.Tag{language.English}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		catalog := map[string]string{}
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		catalogs[lang] = catalog
		if lang != "en" {
			tags = append(tags, language.Make(lang))
		}
	}

	return &Translator{
		catalogs: catalogs,
		matcher:  language.NewMatcher(tags),
		fallback: "en",
	}, nil
}

// Localizer resolves the best supported locale for the given preferences.
// Preferences are tried in order; the first parseable value wins the match.
func (tr *Translator) Localizer(prefs ...string) *Localizer {
	for _, pref := range prefs {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		tag, _, conf := tr.matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		base, _ := tag.Base()
		if catalog, ok := tr.catalogs[base.String()]; ok {
			return &Localizer{catalog: catalog, fallback: tr.catalogs[tr.fallback]}
		}
	}
	return &Localizer{catalog: tr.catalogs[tr.fallback], fallback: tr.catalogs[tr.fallback]}
}

// Localizer translates keys for a single resolved locale.
type Localizer struct {
	catalog  map[string]string
	fallback map[string]string
}

// T renders the message for key, interpolating {{name}} style placeholders.
// Unknown keys render as the key itself, mirroring i18next behavior.
func (l *Localizer) T(key string, args ...Args) string {
	msg, ok := l.catalog[key]
	if !ok {
		msg, ok = l.fallback[key]
	}
	if !ok {
		return key
	}
	for _, set := range args {
		for name, value := range set {
			msg = strings.ReplaceAll(msg, "{{"+name+"}}", fmt.Sprint(value))
		}
	}
	return msg
}

// Middleware negotiates the request locale from the lng query parameter and
// the Accept-Language header, storing a Localizer in the request context.
func Middleware(tr *Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc := tr.Localizer(c.Query("lng"), c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(localeKey, loc)
		return c.Next()
	}
}

// FromCtx retrieves the request Localizer installed by Middleware.
func FromCtx(c *fiber.Ctx) *Localizer {
	if loc, ok := c.Locals(localeKey).(*Localizer); ok {
		return loc
	}
	return &Localizer{}
}
