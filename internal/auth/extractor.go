package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Channel is the transport a credential arrived on.
type Channel string

const (
	ChannelNone   Channel = ""
	ChannelCookie Channel = "cookie"
	ChannelHeader Channel = "header"
)

// ClientTypeHeader lets login callers declare themselves as browser clients.
const ClientTypeHeader = "X-Client-Type"

// ChannelForClientType maps the declared client type to the issuing channel.
func ChannelForClientType(clientType string) Channel {
	if strings.EqualFold(strings.TrimSpace(clientType), "web") {
		return ChannelCookie
	}
	return ChannelHeader
}

// Credential is the tagged result of extraction: Cookie(token), Header(token) or None.
type Credential struct {
	Channel Channel
	Token   string
}

// Present reports whether a credential was found.
func (c Credential) Present() bool {
	return c.Channel != ChannelNone && c.Token != ""
}

// Extractor locates the session credential on a request, cookie first.
type Extractor struct {
	cookieName string
}

// NewExtractor builds an extractor reading the named session cookie.
func NewExtractor(cookieName string) *Extractor {
	return &Extractor{cookieName: cookieName}
}

// Extract reads the credential from the fiber request.
func (e *Extractor) Extract(c *fiber.Ctx) Credential {
	return e.FromParts(c.Cookies(e.cookieName), c.Get(fiber.HeaderAuthorization))
}

// FromParts applies the ordering rules to a raw cookie value and Authorization header.
// A cookie wins over a header because browsers may also send stale headers.
func (e *Extractor) FromParts(cookieValue, authorization string) Credential {
	if token := strings.TrimSpace(cookieValue); token != "" {
		return Credential{Channel: ChannelCookie, Token: token}
	}

	parts := strings.SplitN(strings.TrimSpace(authorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return Credential{Channel: ChannelHeader, Token: token}
		}
	}
	return Credential{}
}
