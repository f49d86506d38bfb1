package network

import (
	"reportassist/sources/tracing"

	"golang.org/x/net/proxy"
)

// NewProxyDialer returns a SOCKS5 dialer, or a direct one when no proxy is configured.
func NewProxyDialer(config *ProxyConfig, log *tracing.Logger) (proxy.Dialer, error) {
	if !config.Enabled {
		log.I("Outbound proxy disabled, dialing directly")
		return proxy.Direct, nil
	}

	var auth *proxy.Auth
	if config.ProxyUser != "" {
		auth = &proxy.Auth{User: config.ProxyUser, Password: config.ProxyPass}
	}

	dialer, err := proxy.SOCKS5("tcp", config.ProxyAddress, auth, proxy.Direct)
	if err != nil {
		log.E("Failed to create proxy dialer", tracing.InnerError, err, tracing.ProxyUrl, config.ProxyAddress)
		return nil, err
	}

	log.I("Outbound proxy configured", tracing.ProxyUrl, config.ProxyAddress)
	return dialer, nil
}
