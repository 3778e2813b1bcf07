// Package proxy parses decrypted proxy credential strings and builds the
// HTTP clients that route upstream calls through them.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

// Strict credential grammar: username has no colon, password has no "@",
// port is digits only.
var credentialPattern = regexp.MustCompile(`^([^:]+):([^@]+)@([^:]+):(\d+)$`)

// Credential is a parsed proxy connection credential. All four fields are
// always present; a partially recoverable string is rejected outright.
type Credential struct {
	Username string
	Password string
	Host     string
	Port     string
}

// Parse decomposes a "username:password@hostname:port" string. It returns
// nil on any deviation from the expected shape so the caller can surface an
// invalid-format error instead of an internal fault.
func Parse(s string) *Credential {
	if s == "" {
		return nil
	}

	match := credentialPattern.FindStringSubmatch(s)
	if match == nil {
		return nil
	}

	return &Credential{
		Username: match[1],
		Password: match[2],
		Host:     match[3],
		Port:     match[4],
	}
}

// URL renders the credential as an http proxy URL.
func (c *Credential) URL() *url.URL {
	return &url.URL{
		Scheme: "http",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host + ":" + c.Port,
	}
}

// Redacted renders the credential with the password masked. Any diagnostic
// output must go through this, never through URL or the raw fields.
func (c *Credential) Redacted() string {
	return fmt.Sprintf("%s:****@%s:%s", c.Username, c.Host, c.Port)
}

// HTTPClient returns a client that routes requests through cred. A nil
// credential yields the default client unchanged.
func HTTPClient(cred *Credential) *http.Client {
	if cred == nil {
		return http.DefaultClient
	}
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultClient
	}
	transport := baseTransport.Clone()
	transport.Proxy = http.ProxyURL(cred.URL())
	return &http.Client{Transport: transport}
}
