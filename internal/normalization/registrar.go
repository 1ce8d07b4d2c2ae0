package normalization

import (
	"strings"

	"solana-address-checker/internal/domain"
)

// registrarCountries is checked in order, first for an exact name and then
// for a contained pattern, so specific names must precede generic ones.
var registrarCountries = []struct {
	pattern string
	country string
}{
	{"GoDaddy.com, LLC", "United States"},
	{"NameCheap, Inc.", "United States"},
	{"Google LLC", "United States"},
	{"Squarespace Domains II LLC", "United States"},
	{"Cloudflare, Inc.", "United States"},
	{"Amazon Registrar, Inc.", "United States"},
	{"MarkMonitor Inc.", "United States"},
	{"Network Solutions, LLC", "United States"},
	{"Porkbun LLC", "United States"},
	{"Dynadot Inc", "United States"},
	{"NameSilo, LLC", "United States"},
	{"Epik Inc.", "United States"},
	{"Tucows Domains Inc.", "Canada"},
	{"Gandi SAS", "France"},
	{"OVH sas", "France"},
	{"IONOS SE", "Germany"},
	{"Key-Systems GmbH", "Germany"},
	{"Hostinger Operations, UAB", "Lithuania"},
	{"Alibaba Cloud Computing (Beijing) Co., Ltd.", "China"},
	{"PDR Ltd. d/b/a PublicDomainRegistry.com", "India"},
	{"Njalla", "Saint Kitts and Nevis"},
	{"GoDaddy", "United States"},
	{"Namecheap", "United States"},
	{"Google", "United States"},
	{"Squarespace", "United States"},
	{"Cloudflare", "United States"},
	{"Amazon", "United States"},
	{"MarkMonitor", "United States"},
	{"Network Solutions", "United States"},
	{"Porkbun", "United States"},
	{"Dynadot", "United States"},
	{"NameSilo", "United States"},
	{"Tucows", "Canada"},
	{"Gandi", "France"},
	{"OVH", "France"},
	{"IONOS", "Germany"},
	{"Key-Systems", "Germany"},
	{"Hostinger", "Lithuania"},
	{"Alibaba", "China"},
	{"PublicDomainRegistry", "India"},
}

// RegistrarCountry maps a registrar name to its country. Unmatched names
// yield "Registrar: <name>".
func RegistrarCountry(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Unknown
	}
	for _, r := range registrarCountries {
		if strings.EqualFold(name, r.pattern) {
			return r.country
		}
	}
	lower := strings.ToLower(name)
	for _, r := range registrarCountries {
		if strings.Contains(lower, strings.ToLower(r.pattern)) {
			return r.country
		}
	}
	return "Registrar: " + name
}
