package network

import (
	"reportassist/sources/configuration"
	"time"
)

type ProxyConfig struct {
	Enabled      bool
	ProxyAddress string
	ProxyUser    string
	ProxyPass    string
	Timeout      time.Duration
}

func NewProxyConfig(config *configuration.Config) *ProxyConfig {
	return &ProxyConfig{
		Enabled:      config.Proxy.Enabled && config.Proxy.Address != "",
		ProxyAddress: config.Proxy.Address,
		ProxyUser:    config.Proxy.User,
		ProxyPass:    config.Proxy.Password,
		Timeout:      config.Proxy.Timeout,
	}
}
