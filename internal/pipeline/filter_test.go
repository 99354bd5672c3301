package pipeline

import (
	"strings"
	"testing"
)

func TestMatchKeyword(t *testing.T) {
	t.Parallel()

	keywords := []string{"圖庫資源", "模板試作", "工程組", "示範"}

	tests := []struct {
		name    string
		titles  []string
		want    string
		wantHit bool
	}{
		{name: "gallery title", titles: []string{"圖庫資源集"}, want: "圖庫資源", wantHit: true},
		{name: "whitespace inside title", titles: []string{"模板 試作 v2"}, want: "模板試作", wantHit: true},
		{name: "second title matches", titles: []string{"", "工程組會議"}, want: "工程組", wantHit: true},
		{name: "regular title", titles: []string{"期末報告"}},
		{name: "no titles", titles: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, hit := MatchKeyword(tt.titles, keywords)
			if hit != tt.wantHit || got != tt.want {
				t.Errorf("MatchKeyword(%v) = (%q, %v), want (%q, %v)", tt.titles, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestMatchKeyword_CaseAndNormalization(t *testing.T) {
	t.Parallel()

	if _, hit := MatchKeyword([]string{"DEMO Page"}, []string{"demo"}); !hit {
		t.Error("expected case-insensitive match")
	}
	// "é" decomposed in the title, precomposed in the keyword.
	if _, hit := MatchKeyword([]string{"Cafe\u0301"}, []string{"caf\u00e9"}); !hit {
		t.Error("expected NFC-normalized match")
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	if got := NormalizeTitle(" A b\u3000C\n"); got != "abc" {
		t.Errorf("NormalizeTitle() = %q, want %q", got, "abc")
	}
}

func TestVisibleRunes(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "<html><head><title>ignored title</title></head><body><p>中 文</p>\n<p> ab </p></body></html>")
	if got := VisibleRunes(doc); got != 4 {
		t.Errorf("VisibleRunes() = %d, want 4", got)
	}

	long := mustParse(t, "<body><p>"+strings.Repeat("字", 150)+"</p></body>")
	if got := VisibleRunes(long); got != 150 {
		t.Errorf("VisibleRunes() = %d, want 150", got)
	}
}

func TestHeadTitle(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "<html><head><title>  筆記 </title></head><body></body></html>")
	if got := HeadTitle(doc); got != "筆記" {
		t.Errorf("HeadTitle() = %q, want %q", got, "筆記")
	}
}
