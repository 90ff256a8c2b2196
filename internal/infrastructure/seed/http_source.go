package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// HTTPSource fetches seed documents hosted as static files under baseURL.
// A fetch is attempted once; a failure surfaces to the caller.
type HTTPSource struct {
	client *resty.Client
	log    *logrus.Logger
}

func NewHTTPSource(baseURL string, timeout time.Duration, log *logrus.Logger) *HTTPSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{client: client, log: log}
}

func (s *HTTPSource) Fetch(ctx context.Context, resource Resource) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get("/" + resource.FileName())
	if err != nil {
		s.log.Warnf("Failed to fetch seed %s: %+v", resource, err)
		return nil, fmt.Errorf("fetch %s: %w", resource.FileName(), err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", resource.FileName(), resp.StatusCode())
	}

	s.log.Debugf("Fetched seed %s (%d bytes)", resource, len(resp.Body()))
	return resp.Body(), nil
}
