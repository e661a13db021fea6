// Package companies holds the heuristics that decide whether a search result is a company
// and what that company is called.
package companies

import (
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`https?://(?:www\.)?([^/?#]+)`)

// Directories, review sites, media, social and other non-company hosts
var excludedDomains = []string{
	// Directories and review sites
	"capterra.com", "g2.com", "g2crowd.com", "crunchbase.com",
	"yelp.com", "alternativeto.net", "slant.co", "getapp.com",
	"softwareadvice.com", "trustradius.com", "sourceforge.net",
	"softwaresuggest.com", "financesonline.com", "saasworthy.com",
	"goodfirms.co",
	// Media and blogs
	"medium.com", "substack.com", "wordpress.com", "blogspot.com",
	"techcrunch.com", "forbes.com", "entrepreneur.com", "inc.com",
	"wired.com", "theverge.com", "venturebeat.com", "zdnet.com",
	"cnet.com", "mashable.com", "businessinsider.com", "cnbc.com",
	"bloomberg.com", "reuters.com", "bbc.com", "nytimes.com",
	"wsj.com", "theguardian.com", "arstechnica.com",
	// Social and forums
	"producthunt.com", "news.ycombinator.com", "reddit.com",
	"twitter.com", "x.com", "linkedin.com", "quora.com",
	"wikipedia.org", "youtube.com", "facebook.com", "instagram.com",
	"tiktok.com", "pinterest.com",
	// Other non-company
	"github.com", "stackoverflow.com", "arxiv.org", "digitalcommerce360.com",
}

// Path fragments that mark editorial content on an otherwise valid host
var editorialURLPatterns = []string{
	"/blog", "/news", "/article", "/press", "/media",
	"/resources/", "/insights/", "/learn/", "/guides/",
	"/posts/", "/stories/", "/opinion/", "/editorial/",
	"/review/", "/reviews/", "/best-", "/top-",
}

// ExtractDomain returns the lowercase host of url without a leading "www.", or "" if none
func ExtractDomain(url string) string {
	m := domainPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(url)))
	if m == nil {
		return ""
	}
	host := m[1]
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}

// DomainRoot returns the first label of the domain, title-cased ("stripe.com" -> "Stripe")
func DomainRoot(url string) string {
	domain := ExtractDomain(url)
	if domain == "" {
		return ""
	}
	return TitleCase(strings.Split(domain, ".")[0])
}

// IsExcludedDomain reports whether domain is, or is a subdomain of, a known non-company host
func IsExcludedDomain(domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	for _, excl := range excludedDomains {
		if domain == excl || strings.HasSuffix(domain, "."+excl) {
			return true
		}
	}
	return false
}

// IsEditorialURL reports whether the URL path looks like an article, review or listicle
func IsEditorialURL(url string) bool {
	lower := strings.ToLower(url)
	if i := strings.Index(lower, "://"); i >= 0 {
		lower = lower[i+3:]
	}
	slash := strings.Index(lower, "/")
	if slash < 0 {
		return false
	}
	path := lower[slash:]
	for _, p := range editorialURLPatterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
