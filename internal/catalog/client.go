package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-browser/internal/config"
)

const popularMoviesPath = "/movie/popular"

// ErrUpstreamStatus is returned when the catalog answers with a non-200 status.
var ErrUpstreamStatus = errors.New("unexpected catalog status")

// Client fetches listings from the upstream movie catalog. Responses are passed
// through verbatim.
type Client interface {
	PopularMovies(ctx context.Context, page int, language string) (json.RawMessage, error)
}

type httpClient struct {
	rest   *resty.Client
	logger *zap.Logger
}

// NewHTTPClient builds a resty-backed catalog client.
func NewHTTPClient(cfg config.CatalogConfig, logger *zap.Logger) Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.AccessToken)

	rest.OnError(func(req *resty.Request, err error) {
		logger.Warn("catalog call failed", zap.String("url", req.URL), zap.Error(err))
	})

	return &httpClient{rest: rest, logger: logger}
}

func (c *httpClient) PopularMovies(ctx context.Context, page int, language string) (json.RawMessage, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"language": language,
		}).
		Get(popularMoviesPath)
	if err != nil {
		return nil, fmt.Errorf("request catalog.popularMovies: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("request catalog.popularMovies: %w %d", ErrUpstreamStatus, resp.StatusCode())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, errors.New("catalog.popularMovies response: invalid json")
	}
	c.logger.Debug("catalog call completed",
		zap.Int("page", page),
		zap.String("language", language),
		zap.Duration("duration", resp.Time()),
	)
	return json.RawMessage(body), nil
}
