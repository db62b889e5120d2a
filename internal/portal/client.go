package portal

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/pkg/config"
	"github.com/noah-isme/ssp-overtime-api/pkg/errors"
)

// pagingParam is the portal's page-size selector. Posting it with a large
// value makes the submission grid render every row on one page.
const pagingParam = "ctl00$ContentPlaceHolder1$ddlPage"

// SessionGetter performs an authenticated GET against a portal URL and
// returns the response body. Login, cookie and credential handling live
// behind this interface; the service never manages them itself.
type SessionGetter interface {
	Get(ctx context.Context, pageURL string) (string, error)
}

// HTTPGetter is the default SessionGetter backed by net/http. The portal
// serves a self-signed certificate on the intranet, so TLS verification is
// togglable.
type HTTPGetter struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPGetter builds a getter honouring the configured timeout and TLS
// verification flag.
func NewHTTPGetter(cfg config.PortalConfig, logger *zap.Logger) *HTTPGetter {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := http.DefaultTransport
	if !cfg.VerifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &HTTPGetter{
		client: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// Get fetches the page body. Timeouts and connection failures surface as
// the unreachable error class so callers can distinguish them from a portal
// that answered with an unexpected status.
func (g *HTTPGetter) Get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid portal url")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("portal request failed", zap.String("url", pageURL), zap.Error(err))
		return "", errors.Wrap(err, errors.ErrPortalUnreachable.Code, errors.ErrPortalUnreachable.Status, errors.ErrPortalUnreachable.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn("portal returned unexpected status",
			zap.String("url", pageURL),
			zap.Int("status", resp.StatusCode))
		return "", errors.Clone(errors.ErrPortalStatus, "portal returned status "+resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPortalUnreachable.Code, errors.ErrPortalUnreachable.Status, "portal response truncated")
	}

	return string(body), nil
}

// Client resolves the service's page fetches against the configured portal.
type Client struct {
	getter SessionGetter
	cfg    config.PortalConfig
	logger *zap.Logger
}

// ClientParams groups the Client dependencies.
type ClientParams struct {
	Getter SessionGetter
	Config config.PortalConfig
	Logger *zap.Logger
}

// NewClient wires a page client. A nil Getter falls back to the default
// HTTP implementation.
func NewClient(p ClientParams) *Client {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Getter == nil {
		p.Getter = NewHTTPGetter(p.Config, p.Logger)
	}
	return &Client{getter: p.Getter, cfg: p.Config, logger: p.Logger}
}

// FetchAttendancePage retrieves the raw attendance page HTML.
func (c *Client) FetchAttendancePage(ctx context.Context) (string, error) {
	return c.getter.Get(ctx, c.pageURL(c.cfg.AttendancePath, nil))
}

// FetchPersonalPage retrieves the raw personal-record page HTML with the
// paging selector forced wide so every submission row is present.
func (c *Client) FetchPersonalPage(ctx context.Context) (string, error) {
	params := url.Values{}
	if c.cfg.DisablePagingArg != "" {
		params.Set(pagingParam, c.cfg.DisablePagingArg)
	}
	return c.getter.Get(ctx, c.pageURL(c.cfg.PersonalPath, params))
}

func (c *Client) pageURL(path string, params url.Values) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	full := base + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	return full
}
