package companies

import (
	"strings"
	"testing"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.stripe.com/pricing", "stripe.com"},
		{"http://app.brex.com", "app.brex.com"},
		{"HTTPS://WWW.Ramp.com?ref=x", "ramp.com"},
		{"https://localhost:8080/x", "localhost"},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.url); got != tt.expected {
			t.Errorf("ExtractDomain(%q): expected %q, got %q", tt.url, tt.expected, got)
		}
	}
}

func TestIsExcludedDomain(t *testing.T) {
	excluded := []string{"g2.com", "news.ycombinator.com", "en.wikipedia.org", "x.com", "blog.medium.com"}
	for _, d := range excluded {
		if !IsExcludedDomain(d) {
			t.Errorf("Expected %q to be excluded", d)
		}
	}

	allowed := []string{"dropbox.com", "zinc.com", "stripe.com", "mybbc.com.au", ""}
	for _, d := range allowed {
		if IsExcludedDomain(d) {
			t.Errorf("Expected %q to be allowed", d)
		}
	}
}

func TestIsEditorialURL(t *testing.T) {
	if !IsEditorialURL("https://acme.io/blog/why-we-built-acme") {
		t.Error("Expected blog path to be editorial")
	}
	if !IsEditorialURL("https://acme.io/top-10-crm-tools") {
		t.Error("Expected listicle path to be editorial")
	}
	if IsEditorialURL("https://newsletter-tool.io/") {
		t.Error("Expected host names to be ignored by the path check")
	}
	if IsEditorialURL("https://acme.io/pricing") {
		t.Error("Expected pricing page to pass")
	}
}

func TestIsValidCompetitorTitle(t *testing.T) {
	tests := []struct {
		title    string
		domain   string
		expected bool
	}{
		{"Brex", "brex.com", true},
		{"Ramp | Corporate cards", "ramp.com", true},
		{"Top 10 expense apps", "example.com", false},
		{"How to automate bookkeeping", "example.com", false},
		{"Stripe vs Adyen", "example.com", false},
		{"Accounting Software", "example.com", false},
		{"Brex", "", false},
		{"", "brex.com", false},
		{"This title is definitely longer than forty characters", "example.com", false},
	}

	for _, tt := range tests {
		if got := IsValidCompetitorTitle(tt.title, tt.domain); got != tt.expected {
			t.Errorf("IsValidCompetitorTitle(%q, %q): expected %v, got %v", tt.title, tt.domain, tt.expected, got)
		}
	}
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		title    string
		url      string
		expected string
	}{
		{"Ramp | Corporate cards", "https://ramp.com", "Ramp"},
		{"Pilot: Bookkeeping for startups", "https://pilot.com", "Pilot"},
		{"Bench (Formerly 10sheet) - Bookkeeping", "https://bench.co", "Bench"},
		{"Xy", "https://www.xero.com/us", "Xero"},
		{"", "https://quick-books.intuit.com", "Quick-Books"},
		{"", "garbage", "Unknown"},
	}

	for _, tt := range tests {
		if got := ExtractCompanyName(tt.title, tt.url); got != tt.expected {
			t.Errorf("ExtractCompanyName(%q, %q): expected %q, got %q", tt.title, tt.url, tt.expected, got)
		}
	}
}

func TestExtractFoundingYear(t *testing.T) {
	tests := []struct {
		text     string
		expected int
		found    bool
	}{
		{"Acme was founded in 2018 by two engineers", 2018, true},
		{"Est. 2015, serving 10k customers", 2015, true},
		{"Trusted since 2020", 2020, true},
		{"Launched 2019", 2019, true},
		{"Founded in 1850 as a bank", 0, false},
		{"Founded in 2031", 0, false},
		{"No year here", 0, false},
	}

	for _, tt := range tests {
		year, ok := ExtractFoundingYear(tt.text, 2026)
		if ok != tt.found || year != tt.expected {
			t.Errorf("ExtractFoundingYear(%q): expected (%d, %v), got (%d, %v)", tt.text, tt.expected, tt.found, year, ok)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"Stripe Inc.", "Stripe", true},
		{"acme payments platform", "Acme Payments", true},
		{"Bench (Bookkeeping) Software Solutions", "Bench", true},
		{"AI Labs", "", false},
		{"Best expense tools", "", false},
		{"May 2024 roundup", "", false},
		{"Toptal", "Toptal", true},
		{"HubSpot CRM Suite", "HubSpot CRM", true},
		{"x", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeName(tt.raw)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("NormalizeName(%q): expected (%q, %v), got (%q, %v)", tt.raw, tt.expected, tt.ok, got, ok)
		}
	}
}

func TestNormalizeNames_DedupesAndCaps(t *testing.T) {
	raw := []string{"Stripe", "stripe inc", "STRIPE"}
	for i := 0; i < 20; i++ {
		raw = append(raw, "Company"+strings.Repeat("x", i+1))
	}

	names := NormalizeNames(raw)
	if len(names) != MaxCompetitorNames {
		t.Fatalf("Expected %d names, got %d: %v", MaxCompetitorNames, len(names), names)
	}
	if names[0] != "Stripe" {
		t.Errorf("Expected first name Stripe, got %q", names[0])
	}
	for _, n := range names[1:] {
		if strings.EqualFold(n, "stripe") {
			t.Errorf("Expected case-insensitive dedupe, got %v", names)
		}
	}
}

func TestJaccard(t *testing.T) {
	a := TokenSet("automated bookkeeping for freelancers")
	b := TokenSet("bookkeeping automation freelancers")

	// {automated, bookkeeping, freelancers} vs {bookkeeping, automation, freelancers}
	if got := Jaccard(a, b); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
	if got := Jaccard(map[string]struct{}{}, map[string]struct{}{}); got != 0 {
		t.Errorf("Expected 0 for empty sets, got %v", got)
	}
	if got := Jaccard(a, a); got != 1 {
		t.Errorf("Expected 1 for identical sets, got %v", got)
	}
}

func TestTokenSet_DropsStopWordsAndShortTokens(t *testing.T) {
	set := TokenSet("The best AI tool for www.example.com users")
	for _, w := range []string{"the", "best", "www", "com", "ai", "for"} {
		if _, ok := set[w]; ok {
			t.Errorf("Expected %q to be dropped", w)
		}
	}
	for _, w := range []string{"tool", "example", "users"} {
		if _, ok := set[w]; !ok {
			t.Errorf("Expected %q to be kept", w)
		}
	}
}
