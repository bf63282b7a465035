// Package httpclient builds the one kind of http.Client every
// upstream call in this repo uses: a fixed timeout, a browser-shaped
// header set (several upstreams reject anything that looks like a
// bot), and optional indirection through a configured proxy.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"os"
	"time"
)

// UserAgent is sent on every outbound request. Nominatim and
// Thunderforest both rate-limit or reject requests with Go's default
// "Go-http-client" user agent.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// New returns an *http.Client with the given timeout and, when
// insecureSkipVerify is set, TLS verification disabled. Only the BMKG
// radar host needs insecureSkipVerify=true: it ships a certificate
// that doesn't validate, and that is the one and only place this
// repo disables verification.
func New(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// ApplyFakeHeaders sets the header set upstream map/gazetteer
// providers expect from a real browser.
func ApplyFakeHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", UserAgent)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Sec-Ch-Ua", `"Chromium";v="123", "Not:A-Brand";v="8"`)
}

// AutoProxy rewrites rawURL to go through the configured proxy when
// PROXY_URL is set in the environment, by appending rawURL as the
// proxy's "url" query parameter. Returns rawURL unchanged otherwise.
func AutoProxy(rawURL string) string {
	proxy := os.Getenv("PROXY_URL")
	if proxy == "" {
		return rawURL
	}
	return proxy + "?url=" + url.QueryEscape(rawURL)
}
