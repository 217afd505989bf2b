package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Bagian respons yang dibutuhkan collector.
var videoParts = []string{"snippet", "contentDetails", "statistics"}

// Client adalah klien untuk berinteraksi dengan YouTube Data API v3.
type Client struct {
	service *yt.Service
}

// NewClient membuat instance baru dari YouTube Client. Opsi tambahan
// (mis. option.WithEndpoint) diteruskan ke google api client.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	base := []option.ClientOption{
		option.WithHTTPClient(&http.Client{
			Timeout:   10 * time.Second,
			Transport: &apiKeyTransport{key: apiKey, base: http.DefaultTransport},
		}),
	}
	svc, err := yt.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{service: svc}, nil
}

// MostPopular mengambil chart "mostPopular" untuk satu kategori dan region.
func (c *Client) MostPopular(ctx context.Context, categoryID, regionCode string, maxResults int64) ([]*yt.Video, error) {
	resp, err := c.service.Videos.List(videoParts).
		Chart("mostPopular").
		RegionCode(regionCode).
		VideoCategoryId(categoryID).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch most popular videos for category %s: %w", categoryID, err)
	}
	return resp.Items, nil
}

// apiKeyTransport menambahkan parameter key ke setiap request, karena
// option.WithHTTPClient membuat option.WithAPIKey diabaikan.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}
