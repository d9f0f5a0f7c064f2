package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient. A non-positive timeout keeps resty's
// default, which never times out.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// NewRestyClientFrom wraps an already configured resty.Client.
func NewRestyClientFrom(c *resty.Client) *RestyClient {
	if c == nil {
		c = resty.New()
	}
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the given context, URL and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte {
	if b := r.resp.Body(); b != nil {
		return b
	}
	return []byte{}
}

func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string  { return r.resp.Status() }
