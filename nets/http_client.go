package nets

import (
	"net/http"
	"time"
)

type HTTPClient = *http.Client

func (Module) HTTPClient(
	dialer Dialer,
	getProxyURL GetProxyURL,
) HTTPClient {
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        8,
		IdleConnTimeout:     90 * time.Second,
	}
	if u, err := getProxyURL(); err == nil && u != nil && (u.Scheme == "http" || u.Scheme == "https") {
		// socks proxies are handled by the dialer
		transport.Proxy = http.ProxyURL(u)
		transport.DialContext = (&directDialer).DialContext
	}
	return &http.Client{
		Transport: transport,
	}
}
