package poster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"
	"github.com/joshua-takyi/watchparty/internal/models"
)

const DefaultOMDbURL = "http://www.omdbapi.com/"

type omdbResponse struct {
	Title    string `json:"Title"`
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// OMDbClient looks titles up against the OMDb API.
type OMDbClient struct {
	client  *httpclient.Client
	baseURL string
	apiKey  string
}

func NewOMDbClient(baseURL, apiKey string, timeout time.Duration) *OMDbClient {
	if baseURL == "" {
		baseURL = DefaultOMDbURL
	}
	return &OMDbClient{
		// no retries: a slow or failing upstream only costs one attempt
		client: httpclient.NewClient(
			httpclient.WithHTTPTimeout(timeout),
			httpclient.WithRetryCount(0),
		),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (o *OMDbClient) Lookup(ctx context.Context, title string) (string, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid omdb url: %v", models.ErrUpstream, err)
	}
	q := u.Query()
	q.Set("t", title)
	q.Set("apikey", o.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	resp, err := o.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("%w: omdb request: %v", models.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: omdb returned %s", models.ErrUpstream, resp.Status)
	}

	var body omdbResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding omdb response: %v", models.ErrUpstream, err)
	}

	if body.Response == "False" || body.Poster == "" || body.Poster == "N/A" {
		return "", ErrNoPoster
	}
	return body.Poster, nil
}
