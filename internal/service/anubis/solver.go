// Package anubis gets article fetches past Anubis proof-of-work bot walls.
package anubis

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Noooste/azuretls-client"
	"golang.org/x/sync/singleflight"

	"articleprompts/internal/config"
	"articleprompts/internal/logger"
	"articleprompts/internal/network"
)

const (
	solverTimeout  = 30 * time.Second
	cookieLifetime = 7 * 24 * time.Hour
	passPath       = "/.within.website/x/cmd/anubis/api/pass-challenge"
	cookiePrefix   = "techaro.lol-anubis"
)

// ErrRejected means the wall refused the client outright; there is nothing to solve.
var ErrRejected = errors.New("anubis rejected the request")

type Challenge struct {
	Rules struct {
		Algorithm  string `json:"algorithm"`
		Difficulty int    `json:"difficulty"`
	} `json:"rules"`
	Challenge struct {
		ID         string `json:"id"`
		RandomData string `json:"randomData"`
	} `json:"challenge"`
}

// solution is what the pass endpoint expects back for a challenge.
type solution struct {
	hash    string
	nonce   int
	elapsed time.Duration
}

type Solver struct {
	clientFactory *network.ClientFactory
	store         *Store
	inflight      singleflight.Group
}

func NewSolver(clientFactory *network.ClientFactory, store *Store) *Solver {
	return &Solver{clientFactory: clientFactory, store: store}
}

// IsPage reports whether body is an Anubis page, solvable or not.
func IsPage(body []byte) bool {
	return bytes.Contains(body, []byte(`id="anubis_challenge"`))
}

// IsChallenge reports whether body is a solvable challenge. Rejection pages carry a null challenge.
func IsChallenge(body []byte) bool {
	return IsPage(body) && !bytes.Contains(body, []byte(`"anubis_challenge" type="application/json">null`))
}

// CachedCookie returns a still-valid pass cookie for host.
func (s *Solver) CachedCookie(ctx context.Context, host string) string {
	if s.store == nil {
		return ""
	}
	cookie, err := s.store.GetCookie(ctx, host)
	if err != nil {
		return ""
	}
	return cookie
}

// Solve answers the challenge in body and returns the pass cookie.
// Concurrent solves for the same host share one attempt.
func (s *Solver) Solve(ctx context.Context, pageURL string, body []byte, initial []*http.Cookie) (string, error) {
	if !IsChallenge(body) {
		if IsPage(body) {
			return "", ErrRejected
		}
		return "", nil
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	v, err, _ := s.inflight.Do(parsed.Host, func() (any, error) {
		return s.solve(ctx, parsed, body, initial)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Solver) solve(ctx context.Context, pageURL *url.URL, body []byte, initial []*http.Cookie) (string, error) {
	challenge, err := ParseChallenge(body)
	if err != nil {
		return "", err
	}
	logger.Debug("anubis challenge detected", "module", "service", "action", "solve", "resource", "anubis", "result", "ok", "host", pageURL.Host, "algorithm", challenge.Rules.Algorithm, "difficulty", challenge.Rules.Difficulty)

	sol, err := solveChallenge(ctx, challenge)
	if err != nil {
		return "", fmt.Errorf("solve anubis challenge: %w", err)
	}

	cookie, err := s.submit(ctx, passURL(pageURL, challenge, sol), initial)
	if err != nil {
		logger.Warn("anubis submit failed", "module", "service", "action", "submit", "resource", "anubis", "result", "failed", "host", pageURL.Host, "error", err)
		return "", fmt.Errorf("submit anubis solution: %w", err)
	}

	if s.store != nil {
		_ = s.store.SetCookie(ctx, pageURL.Host, cookie, time.Now().Add(cookieLifetime))
	}
	logger.Info("anubis challenge passed", "module", "service", "action", "solve", "resource", "anubis", "result", "ok", "host", pageURL.Host)
	return cookie, nil
}

var challengeRegex = regexp.MustCompile(`<script id="anubis_challenge" type="application/json">([^<]+)</script>`)

// ParseChallenge extracts the challenge JSON embedded in an Anubis page.
func ParseChallenge(body []byte) (*Challenge, error) {
	matches := challengeRegex.FindSubmatch(body)
	if len(matches) < 2 {
		return nil, errors.New("challenge JSON not found in response")
	}

	var challenge Challenge
	if err := json.Unmarshal(matches[1], &challenge); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	if challenge.Challenge.RandomData == "" {
		return nil, errors.New("challenge randomData is empty")
	}
	return &challenge, nil
}

// solveChallenge dispatches on the algorithm:
//   - preact: SHA256(randomData), then wait difficulty*80ms
//   - metarefresh: randomData itself, then wait difficulty*800ms
//   - fast, slow: nonce search for a SHA256 with difficulty leading zeros
//
// Unknown algorithms are treated as preact.
func solveChallenge(ctx context.Context, c *Challenge) (solution, error) {
	data, difficulty := c.Challenge.RandomData, c.Rules.Difficulty

	switch c.Rules.Algorithm {
	case "metarefresh":
		wait := time.Duration(difficulty)*800*time.Millisecond + 100*time.Millisecond
		return solution{hash: data}, sleep(ctx, wait)
	case "fast", "slow":
		return proofOfWork(ctx, data, difficulty)
	default:
		sum := sha256.Sum256([]byte(data))
		wait := time.Duration(difficulty)*80*time.Millisecond + 50*time.Millisecond
		return solution{hash: hex.EncodeToString(sum[:])}, sleep(ctx, wait)
	}
}

func proofOfWork(ctx context.Context, data string, difficulty int) (solution, error) {
	start := time.Now()
	prefix := strings.Repeat("0", difficulty)

	for nonce := 0; ; nonce++ {
		if nonce%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return solution{}, err
			}
		}
		sum := sha256.Sum256([]byte(data + strconv.Itoa(nonce)))
		hash := hex.EncodeToString(sum[:])
		if strings.HasPrefix(hash, prefix) {
			return solution{hash: hash, nonce: nonce, elapsed: time.Since(start)}, nil
		}
	}
}

// The pass endpoint checks that the client waited at least the advertised time.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// passURL builds the pass-challenge URL for the solved challenge.
func passURL(pageURL *url.URL, c *Challenge, sol solution) string {
	q := url.Values{}
	q.Set("id", c.Challenge.ID)
	q.Set("redir", pageURL.RequestURI())

	switch c.Rules.Algorithm {
	case "metarefresh":
		q.Set("challenge", sol.hash)
	case "fast", "slow":
		q.Set("response", sol.hash)
		q.Set("nonce", strconv.Itoa(sol.nonce))
		q.Set("elapsedTime", strconv.FormatInt(sol.elapsed.Milliseconds(), 10))
	default:
		q.Set("result", sol.hash)
	}

	u := url.URL{Scheme: pageURL.Scheme, Host: pageURL.Host, Path: passPath, RawQuery: q.Encode()}
	return u.String()
}

func (s *Solver) submit(ctx context.Context, target string, initial []*http.Cookie) (string, error) {
	session := s.clientFactory.NewAzureSession(ctx, solverTimeout)
	defer session.Close()

	headers := azuretls.OrderedHeaders{
		{"accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
		{"accept-language", "en-US,en;q=0.9"},
		{"sec-ch-ua", config.ChromeSecChUa},
		{"sec-ch-ua-mobile", "?0"},
		{"sec-ch-ua-platform", `"Windows"`},
		{"sec-fetch-dest", "document"},
		{"sec-fetch-mode", "navigate"},
		{"sec-fetch-site", "same-origin"},
		{"upgrade-insecure-requests", "1"},
		{"user-agent", config.ChromeUserAgent},
	}
	// The challenge is bound to the session cookie handed out with it.
	if header := CookieHeader(initial); header != "" {
		headers = append(headers, []string{"cookie", header})
	}

	resp, err := session.Do(&azuretls.Request{
		Method:           http.MethodGet,
		Url:              target,
		OrderedHeaders:   headers,
		DisableRedirects: true,
	})
	if err != nil {
		return "", fmt.Errorf("submit request: %w", err)
	}
	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parts []string
	for name, value := range resp.Cookies {
		if strings.HasPrefix(name, cookiePrefix) {
			parts = append(parts, name+"="+value)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no anubis cookies in response")
	}
	return strings.Join(parts, "; "), nil
}

// CookieHeader formats cookies as a Cookie request header value.
func CookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
