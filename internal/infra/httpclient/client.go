// Package httpclient builds http.Clients tuned for the report API: short
// per-request deadlines and a small keep-alive pool against a single host.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Timeout bounds the entire request, body read included. A context
	// deadline can still cut it shorter.
	Timeout time.Duration

	DialTimeout    time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration

	IdleConnTimeout     time.Duration
	MaxIdleConnsPerHost int
}

func DefaultConfig() Config {
	return Config{
		Timeout:             15 * time.Second,
		DialTimeout:         5 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
