package i18n

// Locale is a supported language/script code for translated content.
type Locale string

const (
	LocaleUz   Locale = "uz"
	LocaleRu   Locale = "ru"
	LocaleUzKr Locale = "uz-kr"
	LocaleQq   Locale = "qq"
	LocaleEn   Locale = "en"
)

// Fallback is used whenever a requested locale's content is absent.
const Fallback = LocaleUz

// Supported lists every locale a translated entity must carry at creation.
var Supported = []Locale{LocaleUz, LocaleRu, LocaleUzKr, LocaleQq, LocaleEn}

// aliases maps accepted alternate spellings to canonical locales.
var aliases = map[string]Locale{
	"uz_cyrl": LocaleUzKr,
}

// Normalize canonicalizes a raw locale value. It returns false for
// anything outside the supported set.
func Normalize(raw string) (Locale, bool) {
	if loc, ok := aliases[raw]; ok {
		return loc, true
	}
	for _, loc := range Supported {
		if raw == string(loc) {
			return loc, true
		}
	}
	return "", false
}

// Canonical normalizes a raw query value, passing unknown codes through
// unchanged so resolution degrades to the fallback locale.
func Canonical(raw string) Locale {
	if loc, ok := Normalize(raw); ok {
		return loc
	}
	return Locale(raw)
}
