package i18n

import (
	"strings"
	"testing"
)

func TestReadTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{401, 3},
	}
	for _, c := range cases {
		content := strings.TrimSpace(strings.Repeat("word ", c.words))
		if got := ReadTime(content); got != c.want {
			t.Errorf("ReadTime(%d words) = %d, want %d", c.words, got, c.want)
		}
	}
}

func TestReadTimeWhitespaceOnly(t *testing.T) {
	if got := ReadTime("   \n\t  "); got != 0 {
		t.Errorf("ReadTime(whitespace) = %d, want 0", got)
	}
}

func TestBlogReadTimeUsesFallbackLocale(t *testing.T) {
	b := Bundle[BlogFields]{
		LocaleUz: {Title: "t", Content: strings.TrimSpace(strings.Repeat("w ", 400))},
		LocaleEn: {Title: "t", Content: "short"},
	}
	if got := BlogReadTime(b); got != 2 {
		t.Errorf("BlogReadTime = %d, want 2 (driven by uz content)", got)
	}

	// no uz content at all
	if got := BlogReadTime(Bundle[BlogFields]{LocaleEn: {Content: "short"}}); got != 0 {
		t.Errorf("BlogReadTime without uz = %d, want 0", got)
	}
}
