package network

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"reportassist/sources/tracing"

	"golang.org/x/net/proxy"
)

// NewProxyClient builds the HTTP client shared by the provider SDKs. Every connection goes through dialer.
func NewProxyClient(dialer proxy.Dialer, config *ProxyConfig, log *tracing.Logger) *http.Client {
	return &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialContext(dialer),
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
			IdleConnTimeout:       5 * time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
			OnProxyConnectResponse: func(_ context.Context, proxyURL *url.URL, _ *http.Request, res *http.Response) error {
				log.D("Connected to proxy", tracing.ProxyUrl, proxyURL.Redacted(), tracing.ProxyRes, res.Status)
				return nil
			},
		},
	}
}

func dialContext(dialer proxy.Dialer) func(ctx context.Context, network, address string) (net.Conn, error) {
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, address string) (net.Conn, error) {
		return dialer.Dial(network, address)
	}
}
