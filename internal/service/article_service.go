package service

import (
	"bytes"
	"context"
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/Noooste/azuretls-client"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"articleprompts/internal/config"
	"articleprompts/internal/logger"
	"articleprompts/internal/network"
	"articleprompts/internal/service/anubis"
)

const (
	articleFetchTimeout = 30 * time.Second
	maxArticleBytes     = 5 << 20
)

// FetchedArticle is readable article HTML ready to be pasted into the generator.
type FetchedArticle struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

type ArticleService interface {
	// Fetch downloads rawURL and returns its main content. Nothing is stored.
	Fetch(ctx context.Context, rawURL string) (*FetchedArticle, error)
}

// page is one fetched response.
type page struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// fetchFunc GETs pageURL, sending cookie when set.
type fetchFunc func(ctx context.Context, pageURL, cookie string) (*page, error)

type articleService struct {
	clients   *network.ClientFactory
	solver    *anubis.Solver
	sanitizer *bluemonday.Policy
	fallback  fetchFunc
}

// NewArticleService creates the article fetcher. solver may be nil to skip Anubis walls.
func NewArticleService(clients *network.ClientFactory, solver *anubis.Solver) ArticleService {
	s := newArticleService(clients, solver)
	s.fallback = s.fetchWithBrowser
	return s
}

func newArticleService(clients *network.ClientFactory, solver *anubis.Solver) *articleService {
	// Scripts and layout noise interfere with readability scoring.
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &articleService{clients: clients, solver: solver, sanitizer: p}
}

func (s *articleService) Fetch(ctx context.Context, rawURL string) (*FetchedArticle, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: url must be http or https", ErrInvalid)
	}
	host := parsedURL.Host

	cookie := ""
	if s.solver != nil {
		cookie = s.solver.CachedCookie(ctx, host)
	}

	resp, err := s.fetchWithClient(ctx, rawURL, cookie)
	if err != nil {
		logger.Warn("article fetch failed", "module", "service", "action", "fetch", "resource", "article", "result", "failed", "host", host, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// Bot walls usually answer plain clients with one of these; a browser fingerprint often passes.
	if isBlockedStatus(resp.status) && !anubis.IsPage(resp.body) && s.fallback != nil {
		logger.Info("article fetch retry with browser", "module", "service", "action", "fetch", "resource", "article", "result", "retry", "host", host, "status_code", resp.status)
		resp, err = s.fallback(ctx, rawURL, cookie)
		if err != nil {
			logger.Warn("article browser fetch failed", "module", "service", "action", "fetch", "resource", "article", "result", "failed", "host", host, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
	}

	if s.solver != nil && anubis.IsPage(resp.body) {
		resp, err = s.passChallenge(ctx, rawURL, resp)
		if err != nil {
			return nil, err
		}
	}

	if resp.status != http.StatusOK {
		logger.Warn("article http error", "module", "service", "action", "fetch", "resource", "article", "result", "failed", "host", host, "status_code", resp.status)
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.status)
	}

	article, err := s.extractReadable(resp.body, parsedURL)
	if err != nil {
		return nil, err
	}
	article.URL = rawURL

	logger.Info("article fetched", "module", "service", "action", "fetch", "resource", "article", "result", "ok", "host", host, "bytes", len(article.HTML))
	return article, nil
}

// passChallenge solves the Anubis wall in resp and fetches the page again with the pass cookie.
func (s *articleService) passChallenge(ctx context.Context, pageURL string, resp *page) (*page, error) {
	cookie, err := s.solver.Solve(ctx, pageURL, resp.body, resp.cookies)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if header := anubis.CookieHeader(resp.cookies); header != "" {
		cookie = header + "; " + cookie
	}

	next, err := s.fetchWithClient(ctx, pageURL, cookie)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if anubis.IsPage(next.body) {
		return nil, fmt.Errorf("%w: anubis challenge persists", ErrFetchFailed)
	}
	return next, nil
}

func (s *articleService) fetchWithClient(ctx context.Context, pageURL, cookie string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.ChromeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	client := s.clients.NewHTTPClient(ctx, articleFetchTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBytes))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return &page{status: resp.StatusCode, body: body, cookies: resp.Cookies()}, nil
}

func (s *articleService) fetchWithBrowser(ctx context.Context, pageURL, cookie string) (*page, error) {
	session := s.clients.NewAzureSession(ctx, articleFetchTimeout)
	defer session.Close()

	headers := azuretls.OrderedHeaders{
		{"accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
		{"accept-language", "en-US,en;q=0.9"},
		{"sec-ch-ua", config.ChromeSecChUa},
		{"sec-ch-ua-mobile", "?0"},
		{"sec-ch-ua-platform", `"Windows"`},
		{"sec-fetch-dest", "document"},
		{"sec-fetch-mode", "navigate"},
		{"sec-fetch-site", "none"},
		{"user-agent", config.ChromeUserAgent},
	}
	if cookie != "" {
		headers = append(headers, []string{"cookie", cookie})
	}

	resp, err := session.Do(&azuretls.Request{
		Method:         http.MethodGet,
		Url:            pageURL,
		OrderedHeaders: headers,
	})
	if err != nil {
		return nil, err
	}
	body := resp.Body
	if len(body) > maxArticleBytes {
		body = body[:maxArticleBytes]
	}
	cookies := make([]*http.Cookie, 0, len(resp.Cookies))
	for name, value := range resp.Cookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return &page{status: resp.StatusCode, body: body, cookies: cookies}, nil
}

func (s *articleService) extractReadable(body []byte, pageURL *url.URL) (*FetchedArticle, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse content failed: %v", ErrFetchFailed, err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	// Sanitize after readability: the policy drops <title>, which readability needs.
	content := strings.TrimSpace(s.sanitizer.Sanitize(buf.String()))
	if content == "" {
		return nil, fmt.Errorf("%w: no readable content", ErrFetchFailed)
	}

	title := strings.TrimSpace(article.Title())
	if title == "" {
		title = documentTitle(body)
	}
	if title != "" && !hasHeading(content) {
		content = "<h1>" + stdhtml.EscapeString(title) + "</h1>\n" + content
	}

	return &FetchedArticle{Title: title, HTML: content}, nil
}

// documentTitle reads the raw <title> element.
func documentTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// hasHeading reports whether content already carries an h1 for the title extractor to find.
func hasHeading(content string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return false
	}
	return doc.Find("h1").Length() > 0
}

func isBlockedStatus(status int) bool {
	switch status {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	return false
}
