package note2site

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-note2site/internal/assets"
)

// ---------------------------------------------------------------------------
// TestTransform_Skip - Keyword and length checks
// ---------------------------------------------------------------------------

func TestTransform_Skip(t *testing.T) {
	t.Parallel()

	tr := NewTransformer(WithSkipTitleKeywords("圖庫資源", "示範"))

	tests := []struct {
		name       string
		page       RawPage
		wantReason SkipReason
		wantDetail string
	}{
		{
			name:       "short body",
			page:       RawPage{Title: "短頁", Body: exportedPage("短頁", "<p>hi</p>")},
			wantReason: SkipTooShort,
		},
		{
			name:       "keyword in file name",
			page:       RawPage{Title: "圖庫資源集", Body: exportedPage("", "<p>"+longText+"</p>")},
			wantReason: SkipTitleKeyword,
			wantDetail: "圖庫資源",
		},
		{
			name:       "keyword in head title with spaces",
			page:       RawPage{Title: "page", Body: exportedPage("示 範 頁", "<p>"+longText+"</p>")},
			wantReason: SkipTitleKeyword,
			wantDetail: "示範",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := tr.Transform(context.Background(), tt.page)
			if err != nil {
				t.Fatalf("Transform() error: %v", err)
			}
			if !res.Skipped || res.Reason != tt.wantReason {
				t.Fatalf("result = %+v, want skipped with %q", res, tt.wantReason)
			}
			if tt.wantDetail != "" && res.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", res.Detail, tt.wantDetail)
			}
			if res.HTML != "" {
				t.Error("skipped page must not carry HTML")
			}
		})
	}
}

func TestTransform_MinContentChars(t *testing.T) {
	t.Parallel()

	page := RawPage{Title: "p", Body: exportedPage("p", "<p>短</p>")}

	res, err := NewTransformer(WithMinContentChars(0)).Transform(context.Background(), page)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if res.Skipped {
		t.Errorf("page skipped with minimum 0: %+v", res)
	}
}

// ---------------------------------------------------------------------------
// TestTransform_Pipeline - Every stage on one page
// ---------------------------------------------------------------------------

func TestTransform_Pipeline(t *testing.T) {
	t.Parallel()

	content := `<p style="font-size:24pt;color:#FF0000">標題</p>` +
		`<p style="font-size:16pt">` + longText + `</p>` +
		`<ul><li><p><span style="font-size:10pt">第一項</span></p></li>` +
		`<li><p><span>第二項</span></p></li></ul>` +
		`<img id="found" src="images/a.png">` +
		`<img id="lost" src="C:\x\missing.png" width="300" height="200">` +
		`<img id="icon" src="images/dot.png" width="8" height="8">` +
		`<p>A → B</p>`
	resolver := &mapResolver{hashes: map[string]string{"a.png": "abc123", "dot.png": "dot1"}}

	tr := NewTransformer(
		WithResolver(resolver, testBaseURL, 2),
		WithCanvas(true),
	)
	res, err := tr.Transform(context.Background(), RawPage{Title: "週報", Body: exportedPage("週報", content)})
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if res.Skipped {
		t.Fatalf("page unexpectedly skipped: %+v", res)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	checks := []struct {
		name string
		sel  string
		want int
	}{
		{"locale replaced", `html[lang="zh-TW"]`, 1},
		{"envelope", ".outerSpaceWithTopic", 1},
		{"content block", ".outerSpace", 1},
		{"topic", ".topicStringDom", 1},
		{"date", ".dateTimeStringDom", 1},
		{"largest size ranked first", "p.oldFontSize-24Pt.newFontSizeRank-1", 1},
		{"color class", "p.oldColor-ff0000", 1},
		{"animation", `[data-aos="fade-up"]`, 3},
		{"inline font sizes removed", `[style*="font-size"]`, 0},
		{"arrow icon", "i.fa-arrow-right", 1},
		{"publish date", `meta[name="publish_date"][content="2025/04/11"]`, 1},
		{"published time", `meta[property="article:published_time"][content="2025-04-11T22:53:00Z"]`, 1},
		{"time element", `time[datetime="2025/04/11"]`, 1},
		{"small image hidden", "img#icon.display-none", 1},
		{"canvas", "canvas#glsl-canvas", 1},
		{"stylesheet", "head > style", 1},
	}
	for _, c := range checks {
		if got := doc.Find(c.sel).Length(); got != c.want {
			t.Errorf("%s: Find(%q) = %d, want %d", c.name, c.sel, got, c.want)
		}
	}

	spans := doc.Find(".outerSpace > ul > li > p > span")
	if got := spans.Eq(0).Text(); got != "壹、第一項" {
		t.Errorf("first item = %q, want 壹、第一項", got)
	}
	if got := spans.Eq(1).Text(); got != "貳、第二項" {
		t.Errorf("second item = %q, want 貳、第二項", got)
	}

	if src, _ := doc.Find("#found").Attr("src"); src != testBaseURL+"?getFile=abc123" {
		t.Errorf("resolved src = %q", src)
	}
	if src, _ := doc.Find("#lost").Attr("src"); src != `C:\x\missing.png` {
		t.Errorf("failed lookup changed src to %q", src)
	}

	if res.Title != "週報" || res.Stamp.Date != "2025/04/11" {
		t.Errorf("Title/Stamp = %q / %+v", res.Title, res.Stamp)
	}
	if res.Assets.Resolved != 2 || len(res.Assets.Failures) != 1 {
		t.Errorf("Assets = %+v", res.Assets)
	}
	if got := res.Usage.FontSizes(); !slices.Equal(got, []string{"24", "16", "10"}) {
		t.Errorf("FontSizes() = %v", got)
	}
	if got := res.Usage.Colors(); !slices.Equal(got, []string{"ff0000"}) {
		t.Errorf("Colors() = %v", got)
	}
	if res.Flagged {
		t.Error("three sizes must not flag the page")
	}
}

func TestTransform_CustomBundle(t *testing.T) {
	t.Parallel()

	bundle := &assets.Bundle{IndexCSS: ".custom{}", Tail: `<script id="custom-tail"></script>`}
	res, err := NewTransformer(WithBundle(bundle), WithTimeElement(false)).
		Transform(context.Background(), RawPage{Title: "p", Body: exportedPage("p", "<p>"+longText+"</p>")})
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if !strings.Contains(res.HTML, ".custom{}") || !strings.Contains(res.HTML, `id="custom-tail"`) {
		t.Error("custom bundle not injected")
	}
	if strings.Contains(res.HTML, "<time") {
		t.Error("time element injected with option off")
	}
}

func TestTransform_FlagsTooManySizes(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for _, size := range []string{"8", "9", "10", "11", "12", "14", "16"} {
		b.WriteString(`<p style="font-size:` + size + `pt">` + longText + `</p>`)
	}

	res, err := NewTransformer().Transform(context.Background(), RawPage{Title: "p", Body: exportedPage("p", b.String())})
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if !res.Flagged || !strings.Contains(res.HTML, "flagTooMuchFontSize") {
		t.Error("seven distinct sizes must flag the page")
	}
}

func TestTransform_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTransformer().Transform(ctx, RawPage{Title: "p", Body: exportedPage("p", "<p>"+longText+"</p>")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Transform() error = %v, want context.Canceled", err)
	}
}

func TestWithMinContentChars_PanicsOnNegative(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	WithMinContentChars(-1)
}
