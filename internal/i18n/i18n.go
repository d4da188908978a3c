// Package i18n serves the localized copy for insights and API messages.
// Catalogs are flat JSON objects, one file per language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

const (
	LangES = "es"
	LangEN = "en"
)

var requiredLanguages = []string{LangES, LangEN}

//go:embed locales/*.json
var embeddedLocales embed.FS

// Manager resolves language tags and looks up catalog keys. Keys missing in
// a language fall back to the default language catalog.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]map[string]string
}

func NewEmbeddedManager(defaultLanguage string) (*Manager, error) {
	localesFS, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManager(defaultLanguage, localesFS)
}

func NewManager(defaultLanguage string, localesFS fs.FS) (*Manager, error) {
	catalogs, err := loadCatalogs(localesFS)
	if err != nil {
		return nil, err
	}
	for _, language := range requiredLanguages {
		if _, ok := catalogs[language]; !ok {
			return nil, fmt.Errorf("required locale %q missing", language)
		}
	}

	manager := &Manager{catalogs: catalogs, defaultLanguage: LangES}
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	defaults := catalogs[manager.defaultLanguage]
	for language, messages := range catalogs {
		if language == manager.defaultLanguage {
			continue
		}
		for key, value := range defaults {
			if strings.TrimSpace(messages[key]) == "" {
				messages[key] = value
			}
		}
	}
	return manager, nil
}

func loadCatalogs(localesFS fs.FS) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(localesFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	catalogs := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		language := normalizeLanguageTag(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))

		content, err := fs.ReadFile(localesFS, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}
		catalogs[language] = messages
	}
	if len(catalogs) == 0 {
		return nil, fmt.Errorf("no locales found")
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

// IsSupported matches on the primary subtag, so "es-MX" and "ES" count.
func (manager *Manager) IsSupported(raw string) bool {
	_, ok := manager.catalogs[normalizeLanguageTag(raw)]
	return ok
}

func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := normalizeLanguageTag(raw); manager.IsSupported(language) {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage returns the supported tag with the highest
// q-value, keeping header order on ties, or "" when none matches.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	best := ""
	bestQuality := 0.0
	for _, part := range strings.Split(header, ",") {
		tag, quality := parseAcceptLanguagePart(part)
		if quality <= bestQuality || !manager.IsSupported(tag) {
			continue
		}
		best = normalizeLanguageTag(tag)
		bestQuality = quality
	}
	return best
}

func (manager *Manager) Translate(language string, key string) string {
	if value, ok := manager.catalogs[manager.NormalizeLanguage(language)][key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

// parseAcceptLanguagePart splits "en-GB;q=0.8" into its tag and quality.
// A missing or malformed q counts as 1; q=0 means not acceptable.
func parseAcceptLanguagePart(part string) (string, float64) {
	fields := strings.Split(part, ";")
	tag := strings.TrimSpace(fields[0])
	quality := 1.0
	for _, param := range fields[1:] {
		name, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || strings.TrimSpace(name) != "q" {
			continue
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && parsed >= 0 && parsed <= 1 {
			quality = parsed
		}
	}
	return tag, quality
}

func normalizeLanguageTag(raw string) string {
	language := strings.ToLower(strings.TrimSpace(raw))
	language = strings.ReplaceAll(language, "_", "-")
	if primary, _, found := strings.Cut(language, "-"); found {
		return primary
	}
	return language
}
