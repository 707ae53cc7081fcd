package bili

import "time"

// Config holds the endpoints and HTTP behavior of the client.
// Values map to environment variables via pkg/config.
type Config struct {
	// APIBaseURL serves the msgfeed endpoints (liked/replied/mentioned
	// feeds and the generic delete).
	APIBaseURL string `env:"BILI_API_BASE_URL" envDefault:"https://api.bilibili.com"`

	// MessageBaseURL serves the sys-msg endpoints (system feed and the
	// system delete).
	MessageBaseURL string `env:"BILI_MESSAGE_BASE_URL" envDefault:"https://message.bilibili.com"`

	// UserAgent is sent on every request; the message APIs reject
	// clients without a browser-like UA.
	UserAgent string `env:"BILI_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`

	// Timeout bounds a single request, not a whole pagination run.
	Timeout time.Duration `env:"BILI_HTTP_TIMEOUT" envDefault:"30s"`
}
