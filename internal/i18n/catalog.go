package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwch/hubnav/internal/appdirs"
	"golang.org/x/text/language"
)

// DomainJupyterLab is the message domain the hub commands are translated in.
const DomainJupyterLab = "jupyterlab"

// Translator maps a message id (the English source string) to its localized
// form. Unknown ids come back unchanged.
type Translator interface {
	T(key string) string
}

// Provider hands out a Translator per message domain.
type Provider interface {
	Load(domain string) Translator
}

type Catalog struct {
	Locale  string                       `json:"locale"`
	Domains map[string]map[string]string `json:"domains"`
}

var builtinLocales = []language.Tag{language.English, language.Hindi}

var localeMatcher = language.NewMatcher(builtinLocales)

func LoadCatalog(requestedLocale string) Catalog {
	locale := NormalizeLocale(requestedLocale)
	if locale == "" {
		locale = DetectLocale()
	}
	if locale == "" {
		locale = "en"
	}
	base := baseCatalogForLocale(locale)

	if override, ok := loadCommunityCatalog(locale); ok {
		merged := mergeCatalog(base, override)
		if normalized := NormalizeLocale(override.Locale); normalized != "" {
			merged.Locale = normalized
		} else {
			merged.Locale = locale
		}
		return merged
	}

	base.Locale = locale
	return base
}

// Load implements Provider.
func (c Catalog) Load(domain string) Translator {
	return domainTranslator{messages: c.Domains[domain]}
}

type domainTranslator struct {
	messages map[string]string
}

func (d domainTranslator) T(key string) string {
	if msg, ok := d.messages[key]; ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	return key
}

func baseCatalogForLocale(locale string) Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return defaultEnglishCatalog()
	}
	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return defaultEnglishCatalog()
	}
	switch builtinLocales[idx] {
	case language.Hindi:
		// Hindi first, English fallback retained.
		base := mergeCatalog(defaultEnglishCatalog(), defaultHindiCatalog())
		base.Locale = "hi"
		return base
	default:
		return defaultEnglishCatalog()
	}
}

func DetectLocale() string {
	candidates := []string{
		os.Getenv("HUBNAV_LOCALE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
	}
	for _, candidate := range candidates {
		if normalized := NormalizeLocale(candidate); normalized != "" {
			return normalized
		}
	}
	return "en"
}

// NormalizeLocale turns POSIX locale strings (en_US.UTF-8, pt_BR@latin) into
// BCP 47 tags. Anything that does not parse yields "".
func NormalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.Split(trimmed, ".")[0]
	trimmed = strings.Split(trimmed, "@")[0]
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	if len(trimmed) < 2 {
		return ""
	}

	tag, err := language.Parse(trimmed)
	if err != nil || tag == language.Und {
		return ""
	}
	return tag.String()
}

func loadCommunityCatalog(locale string) (Catalog, bool) {
	localesDir, err := appdirs.LocalesDir()
	if err != nil {
		return Catalog{}, false
	}

	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return Catalog{}, false
	}
	lang := normalized
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}

	paths := []string{filepath.Join(localesDir, normalized+".json")}
	if lang != normalized {
		paths = append(paths, filepath.Join(localesDir, lang+".json"))
	}

	for _, path := range paths {
		if loaded, ok := loadCatalogFile(path); ok {
			return loaded, true
		}
	}
	return Catalog{}, false
}

func loadCatalogFile(path string) (Catalog, bool) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, false
	}
	var catalog Catalog
	if err := json.Unmarshal(bytes, &catalog); err != nil {
		return Catalog{}, false
	}
	return catalog, true
}

func mergeCatalog(base Catalog, override Catalog) Catalog {
	merged := Catalog{
		Locale:  base.Locale,
		Domains: map[string]map[string]string{},
	}
	for _, source := range []Catalog{base, override} {
		for domain, messages := range source.Domains {
			target, ok := merged.Domains[domain]
			if !ok {
				target = map[string]string{}
				merged.Domains[domain] = target
			}
			for key, msg := range messages {
				if strings.TrimSpace(msg) == "" {
					continue
				}
				target[key] = msg
			}
		}
	}
	return merged
}

var messageIDs = []string{
	"Restart Server",
	"Request that the Hub restart this server",
	"Hub Control Panel",
	"Open the Hub control panel in a new browser tab",
	"Log Out",
	"Log out of the Hub",
	"Hub",
	"Hub commands",
	"Not running under a Hub; no commands registered",
}

func defaultEnglishCatalog() Catalog {
	messages := make(map[string]string, len(messageIDs))
	for _, id := range messageIDs {
		messages[id] = id
	}
	return Catalog{
		Locale:  "en",
		Domains: map[string]map[string]string{DomainJupyterLab: messages},
	}
}

func defaultHindiCatalog() Catalog {
	return Catalog{
		Locale: "hi",
		Domains: map[string]map[string]string{
			DomainJupyterLab: {
				"Restart Server": "सर्वर पुनः आरंभ करें",
				"Request that the Hub restart this server":        "Hub से इस सर्वर को पुनः आरंभ करने का अनुरोध करें",
				"Hub Control Panel":                               "Hub नियंत्रण पैनल",
				"Open the Hub control panel in a new browser tab": "Hub नियंत्रण पैनल नए ब्राउज़र टैब में खोलें",
				"Log Out":            "लॉग आउट",
				"Log out of the Hub": "Hub से लॉग आउट करें",
				"Hub":                "Hub",
				"Hub commands":       "Hub कमांड",
				"Not running under a Hub; no commands registered": "Hub के अंतर्गत नहीं चल रहा; कोई कमांड पंजीकृत नहीं",
			},
		},
	}
}
