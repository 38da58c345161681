package upstream

import (
	"net/http"
	"strings"

	"seatapp-web/internal/logging"
)

// RelayCookies parses every Set-Cookie header of an upstream response and
// returns the cookies with their path rewritten to "/". Attributes net/http
// does not model stay in Unparsed. Headers that do not parse are dropped.
func RelayCookies(h http.Header) []*http.Cookie {
	lines := h.Values("Set-Cookie")
	cookies := make([]*http.Cookie, 0, len(lines))
	for _, line := range lines {
		c, err := http.ParseSetCookie(line)
		if err != nil {
			logging.Warn().Err(err).Msg("dropping malformed upstream Set-Cookie header")
			continue
		}
		c.Path = "/"
		c.Raw = ""
		cookies = append(cookies, c)
	}
	return cookies
}

// SetCookieHeader serializes c for a Set-Cookie header, keeping any
// attributes left in Unparsed (Priority=High and the like). It returns ""
// for a cookie net/http refuses to serialize.
func SetCookieHeader(c *http.Cookie) string {
	v := c.String()
	if v == "" || len(c.Unparsed) == 0 {
		return v
	}
	return v + "; " + strings.Join(c.Unparsed, "; ")
}

// ExpiredCookie returns a cookie that clears name on the client (Max-Age=0).
func ExpiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
}
