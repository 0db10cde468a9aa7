package skillssh

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"skillsync-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0 Safari/537.36"

const DefaultTimeout = time.Second * 20

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultUserAgent when empty
	UserAgent string
	// defaults to DefaultTimeout when zero
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return Client{}, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/skillssh/http")

	return Client{Http: client}, nil
}

// FetchPage gets a leaderboard page, treating any non-2xx status as
// a failure.
func (c Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: %s", pageURL, res.Status())
	}
	return res.Body(), nil
}
