package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Noooste/azuretls-client"
	"golang.org/x/net/proxy"
)

// ProxyProvider supplies the outbound proxy URL.
// Defined here so the service package can implement it without an import cycle.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// ClientFactory builds outbound clients that honour the configured proxy.
type ClientFactory struct {
	proxyProvider  ProxyProvider
	testHTTPClient *http.Client
}

func NewClientFactory(proxyProvider ProxyProvider) *ClientFactory {
	if proxyProvider == nil {
		proxyProvider = directProxyProvider{}
	}
	return &ClientFactory{proxyProvider: proxyProvider}
}

// NewClientFactoryForTest returns a factory whose HTTP clients are always client.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:  directProxyProvider{},
		testHTTPClient: client,
	}
}

type directProxyProvider struct{}

func (directProxyProvider) GetProxyURL(context.Context) string { return "" }

// NewHTTPClient creates an http.Client using the current proxy settings.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}
	if proxyURL := f.proxyProvider.GetProxyURL(ctx); proxyURL != "" {
		client.Transport = newTransportWithProxy(proxyURL)
	}
	return client
}

// NewAzureSession creates a Chrome-fingerprinted azuretls session using the current proxy settings.
// Callers must Close the session.
func (f *ClientFactory) NewAzureSession(ctx context.Context, timeout time.Duration) *azuretls.Session {
	session := azuretls.NewSession()
	session.Browser = azuretls.Chrome
	session.SetTimeout(timeout)

	if proxyURL := f.proxyProvider.GetProxyURL(ctx); proxyURL != "" {
		_ = session.SetProxy(proxyURL)
	}
	return session
}

// TestProxyWithConfig checks that testURL is reachable through proxyURL without saving anything.
// An empty proxyURL tests the direct connection.
func (f *ClientFactory) TestProxyWithConfig(ctx context.Context, proxyURL, testURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	if f.testHTTPClient != nil {
		client = f.testHTTPClient
	} else if proxyURL != "" {
		client.Transport = newTransportWithProxy(proxyURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

// newTransportWithProxy uses golang.org/x/net/proxy for SOCKS schemes and http.ProxyURL otherwise.
func newTransportWithProxy(proxyURL string) *http.Transport {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return &http.Transport{}
	}

	if !strings.HasPrefix(parsed.Scheme, "socks") {
		return &http.Transport{Proxy: http.ProxyURL(parsed)}
	}

	var auth *proxy.Auth
	if parsed.User != nil {
		auth = &proxy.Auth{User: parsed.User.Username()}
		if password, ok := parsed.User.Password(); ok {
			auth.Password = password
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
	if err != nil {
		return &http.Transport{}
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return &http.Transport{DialContext: cd.DialContext}
	}
	return &http.Transport{
		DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
}
