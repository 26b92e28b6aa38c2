// Package fetcher 抓取目录站点页面。
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/h2non/filetype"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var errEmptyBody = errors.New("empty response body")

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // 每秒请求数
	RetryCount int
	UserAgent  string
}

type Client struct {
	http *resty.Client
}

var _ catalog_interface.Fetcher = (*Client)(nil)

func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q", opts.BaseURL)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(base.String())
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(base.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	httpClient.SetRetryCount(opts.RetryCount)
	httpClient.SetRetryWaitTime(500 * time.Millisecond)
	httpClient.SetRetryMaxWaitTime(5 * time.Second)
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		// 403/429 是反爬拦截，重试只会加重
		return resp.StatusCode() >= http.StatusInternalServerError &&
			resp.StatusCode() != http.StatusServiceUnavailable
	})

	// burst 与速率相同，不丢请求
	burst := int(opts.RateLimit)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &Client{http: httpClient}, nil
}

// Fetch 获取页面原始内容；所有失败都以 *catalog_models.FetchError 返回
func (c *Client) Fetch(ctx context.Context, target string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, &catalog_models.FetchError{URL: target, Cause: err}
	}
	if resp.IsError() {
		return nil, &catalog_models.FetchError{URL: target, StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, &catalog_models.FetchError{URL: target, StatusCode: resp.StatusCode(), Cause: errEmptyBody}
	}
	// 拦截页偶尔返回图片或压缩包
	if kind, _ := filetype.Match(body); kind != filetype.Unknown {
		return nil, &catalog_models.FetchError{
			URL:        target,
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("unexpected %s payload", kind.MIME.Value),
		}
	}
	return body, nil
}
