package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>A <b>deep</b> crawl</p><script>alert("xss")</script>`)
	if strings.Contains(got, "<script>") || strings.Contains(got, "alert") {
		t.Errorf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<b>deep</b>") {
		t.Errorf("basic formatting should survive: %q", got)
	}
}

func TestSanitize_EventHandlers(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:steal()" onclick="steal()">link</a>`)
	if strings.Contains(got, "javascript:") || strings.Contains(got, "onclick") {
		t.Errorf("unsafe attributes survived: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	cases := []struct{ in, want string }{
		{`<b>Sunken Crypt</b>`, "Sunken Crypt"},
		{`Sunken Crypt`, "Sunken Crypt"},
		{`<script>alert(1)</script>Crypt`, "Crypt"},
	}
	for _, tc := range cases {
		if got := htmlsanitize.PlainText(tc.in); got != tc.want {
			t.Errorf("PlainText(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
