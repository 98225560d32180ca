package i18n

import (
	"errors"
	"strings"
	"testing"
)

func fullBlogBundle() Bundle[BlogFields] {
	b := Bundle[BlogFields]{}
	for _, loc := range Supported {
		b[loc] = BlogFields{Title: "title " + string(loc), Content: "content " + string(loc)}
	}
	return b
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"uz", LocaleUz, true},
		{"ru", LocaleRu, true},
		{"uz-kr", LocaleUzKr, true},
		{"uz_cyrl", LocaleUzKr, true},
		{"qq", LocaleQq, true},
		{"en", LocaleEn, true},
		{"fr", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := Normalize(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want Locale
	}{
		{"ru", LocaleRu},
		{"uz_cyrl", LocaleUzKr},
		{"fr", Locale("fr")},
		{"", Locale("")},
	}
	for _, c := range cases {
		if got := Canonical(c.in); got != c.want {
			t.Errorf("Canonical(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseBundle(t *testing.T) {
	raw := []byte(`{"uz":{"title":"t","content":"c"},"uz_cyrl":{"title":"t2","content":"c2"},"xx":{"title":"drop","content":"drop"}}`)
	b, err := ParseBundle[BlogFields](raw)
	if err != nil {
		t.Fatalf("ParseBundle: %v", err)
	}
	if b[LocaleUz].Title != "t" {
		t.Errorf("uz title = %q, want t", b[LocaleUz].Title)
	}
	if b[LocaleUzKr].Title != "t2" {
		t.Errorf("uz_cyrl alias not normalized to uz-kr: %+v", b)
	}
	if len(b) != 2 {
		t.Errorf("unknown locale kept, got %d entries", len(b))
	}
}

func TestParseBundleMalformed(t *testing.T) {
	for _, raw := range []string{"not json", `"just a string"`, "null"} {
		if _, err := ParseBundle[BlogFields]([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseBundle(%q) err = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestValidateComplete(t *testing.T) {
	if err := ValidateComplete(fullBlogBundle()); err != nil {
		t.Fatalf("complete bundle rejected: %v", err)
	}

	b := fullBlogBundle()
	delete(b, LocaleQq)
	err := ValidateComplete(b)
	if err == nil || !strings.Contains(err.Error(), "qq") {
		t.Errorf("missing locale not reported, err = %v", err)
	}

	b = fullBlogBundle()
	b[LocaleRu] = BlogFields{Title: "only title"}
	err = ValidateComplete(b)
	if err == nil || !strings.Contains(err.Error(), "content") || !strings.Contains(err.Error(), "ru") {
		t.Errorf("empty field not reported, err = %v", err)
	}
}

func TestMergeBundle(t *testing.T) {
	existing := fullBlogBundle()
	partial := Bundle[BlogFields]{
		LocaleRu: {Title: "new ru title"},
	}

	merged := MergeBundle(existing, partial)
	if merged[LocaleRu].Title != "new ru title" {
		t.Errorf("partial title not applied: %+v", merged[LocaleRu])
	}
	if merged[LocaleRu].Content != existing[LocaleRu].Content {
		t.Errorf("unspecified content not retained: %+v", merged[LocaleRu])
	}
	if merged[LocaleEn] != existing[LocaleEn] {
		t.Errorf("untouched locale changed: %+v", merged[LocaleEn])
	}

	// inputs must stay intact
	if existing[LocaleRu].Title != "title ru" {
		t.Errorf("existing bundle mutated: %+v", existing[LocaleRu])
	}
}

func TestMergeBundleIdempotent(t *testing.T) {
	existing := fullBlogBundle()
	partial := Bundle[BlogFields]{
		LocaleEn: {Title: "updated", Content: "updated body"},
		LocaleQq: {Content: "qq body only"},
	}

	once := MergeBundle(existing, partial)
	twice := MergeBundle(once, partial)
	for _, loc := range Supported {
		if once[loc] != twice[loc] {
			t.Errorf("merge not idempotent at %s: %+v vs %+v", loc, once[loc], twice[loc])
		}
	}
}

func TestResolve(t *testing.T) {
	b := fullBlogBundle()

	got := Resolve(b, LocaleRu)
	if got.Title != "title ru" || got.Content != "content ru" {
		t.Errorf("Resolve(ru) = %+v", got)
	}

	// missing locale falls back to uz
	delete(b, LocaleQq)
	got = Resolve(b, LocaleQq)
	if got.Title != "title uz" {
		t.Errorf("fallback not applied: %+v", got)
	}

	// per-field fallback: empty title falls back independently
	b[LocaleEn] = BlogFields{Content: "english body"}
	got = Resolve(b, LocaleEn)
	if got.Title != "title uz" || got.Content != "english body" {
		t.Errorf("per-field fallback wrong: %+v", got)
	}

	// no fallback either: empty strings, no error
	got = Resolve(Bundle[BlogFields]{}, LocaleRu)
	if got.Title != "" || got.Content != "" {
		t.Errorf("empty bundle should resolve to zero fields: %+v", got)
	}
}

func TestResolveTeamFields(t *testing.T) {
	b := Bundle[TeamFields]{
		LocaleUz: {Position: "dev", Description: "uz desc"},
	}
	got := Resolve(b, LocaleEn)
	if got.Position != "dev" || got.Description != "uz desc" {
		t.Errorf("team fallback wrong: %+v", got)
	}
}
