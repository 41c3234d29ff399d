package session

import "strings"

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "http://localhost:3000/api/v1"

// Config controls how the service describes where answers go.
type Config struct {
	// BaseURL is the API root advertised in submit URLs, without the
	// trailing slash.
	BaseURL string
}

// SubmitURL returns the URL a client posts answers for gameID to.
func (c Config) SubmitURL(gameID string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/game/" + gameID + "/submit"
}
