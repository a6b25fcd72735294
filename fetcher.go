package throttler

import (
	"context"
	"io"
	"net/http"
)

// Fetcher is the transport the Throttler dispatches against. Fetch returns the raw response payload
// and status code, or an error when the transport itself failed. A non-2xx status is not an error;
// it is delivered to the completion callback like any other response.
type Fetcher interface {
	Fetch(ctx context.Context, resource string) (payload []byte, status int, err error)
}

type httpFetcher struct {
	client *http.Client
}

// This function creates a Fetcher that performs an HTTP GET against the resource identifier. Pass
// nil to use http.DefaultClient. The Throttler imposes no timeout of its own; a hung request stalls
// the processing loop, so configure a timeout on the client if that matters to you.
func NewHTTPFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, resource string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, 0, err
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	return payload, res.StatusCode, nil
}
