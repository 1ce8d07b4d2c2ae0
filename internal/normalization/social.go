package normalization

import (
	"net/url"
	"regexp"
	"strings"

	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/upstream"
)

var (
	twitterRe       = regexp.MustCompile(`(?i)(?:^|[/.])(?:twitter|x)\.com/(?:#!/)?@?([A-Za-z0-9_]{1,15})(?:[/?#]|$)`)
	telegramRe      = regexp.MustCompile(`(?i)(?:^|[/.])(?:t|telegram)\.me/(?:s/)?@?([A-Za-z0-9_]{4,32})(?:[/?#]|$)`)
	discordShortRe  = regexp.MustCompile(`(?i)(?:^|[/.])discord\.gg/([A-Za-z0-9-]+)`)
	discordInviteRe = regexp.MustCompile(`(?i)(?:^|[/.])discord(?:app)?\.com/invite/([A-Za-z0-9-]+)`)
	githubProfileRe = regexp.MustCompile(`(?i)(?:^|[/.])github\.com/([A-Za-z0-9-]+)/?(?:[?#].*)?$`)
	githubRepoRe    = regexp.MustCompile(`(?i)(?:^|[/.])github\.com/([A-Za-z0-9-]+)/([A-Za-z0-9_.-]+)`)
)

// Path segments that are not account names.
var reservedPaths = map[string]bool{
	"intent": true, "share": true, "home": true, "i": true, "search": true,
	"hashtag": true, "joinchat": true, "addstickers": true,
	"orgs": true, "features": true, "about": true, "login": true,
}

func capture(re *regexp.Regexp, raw string) (string, bool) {
	m := re.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil || reservedPaths[strings.ToLower(m[1])] {
		return "", false
	}
	return m[1], true
}

// ExtractTwitter returns "@handle" for a Twitter/X profile URL.
func ExtractTwitter(raw string) string {
	if h, ok := capture(twitterRe, raw); ok {
		return "@" + h
	}
	return domain.NotFound
}

// ExtractTelegram returns "@channel" for a t.me URL.
func ExtractTelegram(raw string) string {
	if h, ok := capture(telegramRe, raw); ok {
		return "@" + h
	}
	return domain.NotFound
}

// ExtractDiscord returns the invite code from a discord.gg or
// discord.com/invite URL.
func ExtractDiscord(raw string) string {
	if code, ok := capture(discordShortRe, raw); ok {
		return code
	}
	if code, ok := capture(discordInviteRe, raw); ok {
		return code
	}
	return domain.NotFound
}

// ExtractGitHubProfile returns "@name" for a GitHub profile URL.
func ExtractGitHubProfile(raw string) string {
	if h, ok := capture(githubProfileRe, raw); ok {
		return "@" + h
	}
	return domain.NotFound
}

// ExtractGitHubOrg returns the owning org of a GitHub repository URL.
func ExtractGitHubOrg(raw string) string {
	if org, ok := capture(githubRepoRe, raw); ok {
		return org
	}
	return domain.NotFound
}

// ExtractGitHubRepo returns "org/repo" for a GitHub repository URL.
func ExtractGitHubRepo(raw string) string {
	m := githubRepoRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil || reservedPaths[strings.ToLower(m[1])] {
		return domain.NotFound
	}
	return m[1] + "/" + strings.TrimSuffix(m[2], ".git")
}

// links collects website and social URLs from the market pair info.
func links(market upstream.Response) (websites, socials []string) {
	if !market.OK {
		return nil, nil
	}
	info := market.Payload.Get(upstream.KeyPair, "info")
	for _, w := range upstream.List(upstream.Lookup(info, "websites")) {
		if u, ok := upstream.String(upstream.Lookup(w, "url")); ok {
			websites = append(websites, u)
		}
	}
	for _, s := range upstream.List(upstream.Lookup(info, "socials")) {
		if u, ok := upstream.String(upstream.Lookup(s, "url")); ok {
			socials = append(socials, u)
			continue
		}
		platform, _ := upstream.String(upstream.Lookup(s, "platform"))
		if platform == "" {
			platform, _ = upstream.String(upstream.Lookup(s, "type"))
		}
		if handle, ok := upstream.String(upstream.Lookup(s, "handle")); ok {
			socials = append(socials, socialURL(platform, handle))
		}
	}
	return websites, socials
}

// socialURL rebuilds a profile URL from a platform/handle pair.
func socialURL(platform, handle string) string {
	handle = strings.TrimPrefix(handle, "@")
	switch strings.ToLower(platform) {
	case "twitter", "x":
		return "https://x.com/" + handle
	case "telegram":
		return "https://t.me/" + handle
	case "discord":
		return "https://discord.gg/" + handle
	case "github":
		return "https://github.com/" + handle
	}
	return handle
}

// hostname returns the lowercased host of raw without "www.".
func hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// WebsiteDomain returns the project's website domain, or "" when none.
func WebsiteDomain(market upstream.Response) string {
	websites, _ := links(market)
	for _, w := range websites {
		if h := hostname(w); h != "" {
			return h
		}
	}
	return ""
}

// Social builds the public-presence view from market pair info and WHOIS.
func Social(market, whois upstream.Response) domain.SocialRecord {
	rec := domain.NewSocialRecord()
	websites, socials := links(market)

	for _, w := range websites {
		if h := hostname(w); h != "" {
			rec.Website.URL = w
			rec.Website.Domain = h
			break
		}
	}

	for _, u := range append(socials, websites...) {
		if rec.Twitter.Handle == domain.NotFound {
			if h := ExtractTwitter(u); h != domain.NotFound {
				rec.Twitter.Handle, rec.Twitter.URL = h, u
			}
		}
		if rec.Telegram.Channel == domain.NotFound {
			if h := ExtractTelegram(u); h != domain.NotFound {
				rec.Telegram.Channel, rec.Telegram.URL = h, u
			}
		}
		if rec.Discord.Invite == domain.NotFound {
			if code := ExtractDiscord(u); code != domain.NotFound {
				rec.Discord.Invite, rec.Discord.URL = code, u
				rec.Discord.ServerName = domain.Unknown
			}
		}
		if rec.GitHub.Profile == domain.NotFound {
			rec.GitHub.Profile = ExtractGitHubProfile(u)
		}
		if rec.GitHub.Repo == domain.NotFound {
			rec.GitHub.Repo = ExtractGitHubRepo(u)
			rec.GitHub.Org = ExtractGitHubOrg(u)
		}
	}

	rec.Website = Whois(whois, rec.Website)
	return rec
}

// Whois fills registration fields of site from a WHOIS response.
func Whois(resp upstream.Response, site domain.Website) domain.Website {
	if !resp.OK {
		return site
	}
	p := resp.Payload

	if created, ok := upstream.String(p.Get("domain", "created_date")); ok {
		site.RegistrationDate = datePrefix(created)
	}

	site.RegistrationCountry = domain.Unknown
	for _, path := range [][]string{{"registrant", "country"}, {"administrative", "country"}} {
		if c, ok := upstream.String(p.Get(path...)); ok && strings.TrimSpace(c) != "" {
			site.RegistrationCountry = strings.TrimSpace(c)
			break
		}
	}

	if name, ok := upstream.String(p.Get("registrar", "name")); ok {
		site.Registrar = name
		site.RegistrarCountry = RegistrarCountry(name)
	}
	return site
}

// datePrefix returns the date part of an ISO datetime.
func datePrefix(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 {
		return s[:i]
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
