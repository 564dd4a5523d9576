package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v3"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"shopifyproduct.com/pkg/date"
)

const (
	DefaultAPIVersion = "2024-04"
	DefaultTimeout    = 120 * time.Second

	accessTokenHeader = "X-Shopify-Access-Token"
)

// Service issues Admin API mutations for one shop. It holds no mutable state
// and may be shared between goroutines.
type Service struct {
	accessToken string
	shop        string
	endpoint    string
	locationID  string
	timeout     time.Duration
	client      *graphql.Client
	log         *zap.Logger
}

type Config struct {
	// Shop is the shop name, its myshopify.com domain or an URL on it.
	Shop        string
	AccessToken string
	// APIVersion defaults to DefaultAPIVersion.
	APIVersion string
	// LocationID receives variant inventory quantities unless the variant
	// names its own location.
	LocationID string
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

type options struct {
	httpClient *http.Client
	log        *zap.Logger
}

type Option func(*options)

// WithHTTPClient sends requests through c, http.DefaultClient when nil. Its
// transport is wrapped so that non-2xx answers surface as *StatusError.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func NewService(conf Config, opts ...Option) (*Service, error) {
	o := options{
		httpClient: http.DefaultClient,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	shop := strings.TrimSpace(conf.Shop)
	if shop == "" {
		return nil, invalid("shop", "shop url is required")
	}
	token := strings.TrimSpace(conf.AccessToken)
	if token == "" {
		return nil, invalid("accessToken", "access token is required")
	}
	version := conf.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	if !date.ValidAPIVersion(version) {
		return nil, invalid("apiVersion", "%q is not an Admin API release", version)
	}
	base, err := shopBaseURL(shop)
	if err != nil {
		return nil, err
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if o.httpClient == nil {
		o.httpClient = http.DefaultClient
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	hc := *o.httpClient
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc.Transport = &statusTransport{next: next}

	name := goshopify.ShopShortName(strings.TrimPrefix(base, "https://"))
	endpoint := fmt.Sprintf("%s/admin/api/%s/graphql.json", base, version)
	s := &Service{
		accessToken: token,
		shop:        name,
		endpoint:    endpoint,
		locationID:  conf.LocationID,
		timeout:     timeout,
		client:      graphql.NewClient(endpoint, graphql.WithHTTPClient(&hc)),
		log:         o.log.With(zap.String("shop", name)),
	}
	s.client.Log = s.debugGraphQL
	return s, nil
} // ./NewService

// shopBaseURL accepts "name", "name.myshopify.com" or an URL on the shop
// domain and returns "https://name.myshopify.com".
func shopBaseURL(shop string) (string, error) {
	host := shop
	if strings.Contains(shop, "://") {
		u, err := url.Parse(shop)
		if err != nil || u.Host == "" {
			return "", invalid("shop", "%q is not a valid shop url", shop)
		}
		host = u.Host
	} else if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" || strings.ContainsAny(host, " \t:@") {
		return "", invalid("shop", "%q is not a valid shop url", shop)
	}
	return goshopify.ShopBaseUrl(host), nil
} // ./shopBaseURL

func (s *Service) Shop() string {
	return s.shop
}

func (s *Service) Endpoint() string {
	return s.endpoint
}

// debugGraphQL receives the client's trace lines. Header lines carry the
// access token and are dropped.
func (s *Service) debugGraphQL(line string) {
	if strings.HasPrefix(line, ">> headers:") {
		return
	}
	s.log.Debug("graphql", zap.String("trace", line))
} // ./debugGraphQL

// run sends one GraphQL document and decodes its data into resp.
func (s *Service) run(ctx context.Context, op, query string, vars map[string]interface{}, resp interface{}) error {
	rq := graphql.NewRequest(query)
	for k, v := range vars {
		rq.Var(k, v)
	}
	rq.Header.Set(accessTokenHeader, s.accessToken)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.Run(ctx, rq, resp)
	if err != nil {
		return classify(op, err)
	}
	return nil
} // ./run
