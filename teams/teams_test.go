package teams

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/i18n"
	"onedoc/models"
)

func sampleMember() models.TeamMember {
	return models.TeamMember{
		ID:        primitive.NewObjectID(),
		Name:      "Aziza",
		Image:     "/static/uploads/teams/aziza.jpg",
		Instagram: "https://instagram.com/aziza",
		LinkedIn:  "https://linkedin.com/in/aziza",
		GitHub:    "https://github.com/aziza",
		Translations: i18n.Bundle[i18n.TeamFields]{
			i18n.LocaleUz: {Position: "Muharrir", Description: "Bosh muharrir"},
			i18n.LocaleRu: {Position: "Редактор", Description: "Главный редактор"},
		},
	}
}

func TestProjectTeamMemberFullBundle(t *testing.T) {
	member := sampleMember()
	view := ProjectTeamMember(member, "")

	if view.Translations == nil {
		t.Fatal("empty locale must keep the translations bundle")
	}
	if view.Position != "" || view.Description != "" {
		t.Error("full projection must not flatten fields")
	}
	if view.ID != member.ID.Hex() {
		t.Errorf("id = %q, want %q", view.ID, member.ID.Hex())
	}
}

func TestProjectTeamMemberLocalized(t *testing.T) {
	member := sampleMember()

	view := ProjectTeamMember(member, i18n.LocaleRu)
	if view.Position != "Редактор" || view.Description != "Главный редактор" {
		t.Errorf("ru projection = %q / %q", view.Position, view.Description)
	}
	if view.Translations != nil {
		t.Error("localized projection must drop the bundle")
	}

	// missing locale falls back to uz
	view = ProjectTeamMember(member, i18n.LocaleEn)
	if view.Position != "Muharrir" || view.Description != "Bosh muharrir" {
		t.Errorf("en fallback = %q / %q", view.Position, view.Description)
	}
}

func TestProjectTeamMemberLocaleAlias(t *testing.T) {
	member := sampleMember()
	member.Translations[i18n.LocaleUzKr] = i18n.TeamFields{
		Position:    "Муҳаррир",
		Description: "Бош муҳаррир",
	}

	// the uz_cyrl query spelling must reach the uz-kr bundle, not fall
	// through to uz
	view := ProjectTeamMember(member, i18n.Canonical("uz_cyrl"))
	if view.Position != "Муҳаррир" || view.Description != "Бош муҳаррир" {
		t.Errorf("uz_cyrl projection = %q / %q, want uz-kr fields", view.Position, view.Description)
	}
}

func formRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseTeamTranslationsJSON(t *testing.T) {
	form := url.Values{}
	form.Set("translations", `{"uz":{"position":"Muharrir","description":"Bosh muharrir"}}`)

	bundle, err := parseTeamTranslations(formRequest(t, form))
	if err != nil {
		t.Fatalf("parseTeamTranslations: %v", err)
	}
	if bundle[i18n.LocaleUz].Position != "Muharrir" {
		t.Errorf("uz position = %q", bundle[i18n.LocaleUz].Position)
	}
}

func TestParseTeamTranslationsBracketed(t *testing.T) {
	form := url.Values{}
	for _, loc := range i18n.Supported {
		form.Set(fmt.Sprintf("translations[%s][position]", loc), "p")
		form.Set(fmt.Sprintf("translations[%s][description]", loc), "d")
	}

	bundle, err := parseTeamTranslations(formRequest(t, form))
	if err != nil {
		t.Fatalf("parseTeamTranslations: %v", err)
	}
	if err := i18n.ValidateComplete(bundle); err != nil {
		t.Fatalf("bracketed bundle incomplete: %v", err)
	}
}

func TestParseTeamTranslationsMalformedJSON(t *testing.T) {
	form := url.Values{}
	form.Set("translations", "{not json")

	if _, err := parseTeamTranslations(formRequest(t, form)); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}
