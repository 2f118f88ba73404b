// Package httpcors implements the cross-origin policy for the public API.
//
// The policy is reflect-or-substitute: a request from an origin on the
// allow-list (or matching a trusted suffix) gets its own origin echoed
// back; any other request gets the first allow-list entry instead of a
// denial. Browsers on untrusted origins then fail the CORS check on
// their side without the server ever leaking which origins it trusts.
package httpcors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowHeaders = "authorization, x-client-info, apikey, content-type"

// Policy resolves the Access-Control-Allow-Origin value for a request.
type Policy struct {
	allowed  map[string]struct{}
	suffixes []string
	fallback string
}

// NewPolicy builds a policy from an ordered allow-list and a set of
// trusted domain suffixes. The first allow-list entry is the substitute
// origin for untrusted requests; the list must not be empty.
func NewPolicy(allowedOrigins, trustedSuffixes []string) *Policy {
	p := &Policy{
		allowed:  make(map[string]struct{}, len(allowedOrigins)),
		suffixes: trustedSuffixes,
	}
	for _, origin := range allowedOrigins {
		p.allowed[origin] = struct{}{}
	}
	if len(allowedOrigins) > 0 {
		p.fallback = allowedOrigins[0]
	}
	return p
}

// ResolveOrigin returns the origin to reflect for the given request
// origin, or the substitute origin when the request origin is not
// trusted.
func (p *Policy) ResolveOrigin(origin string) string {
	if origin == "" {
		return p.fallback
	}
	if _, ok := p.allowed[origin]; ok {
		return origin
	}
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(origin, suffix) {
			return origin
		}
	}
	return p.fallback
}

// Middleware applies the policy's headers to every response and answers
// preflight requests with an empty 204.
func (p *Policy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		c.Header("Access-Control-Allow-Origin", p.ResolveOrigin(origin))
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
