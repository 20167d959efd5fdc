package anubis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func challengePage(json string) []byte {
	return []byte(`<html><body><script id="anubis_challenge" type="application/json">` + json + `</script></body></html>`)
}

func TestDetect(t *testing.T) {
	challenge := challengePage(`{"rules":{"algorithm":"fast","difficulty":1},"challenge":{"id":"c1","randomData":"abc"}}`)
	rejection := challengePage(`null`)

	require.True(t, IsPage(challenge))
	require.True(t, IsChallenge(challenge))
	require.True(t, IsPage(rejection))
	require.False(t, IsChallenge(rejection))
	require.False(t, IsPage([]byte("<p>plain article</p>")))
}

func TestParseChallenge(t *testing.T) {
	c, err := ParseChallenge(challengePage(`{"rules":{"algorithm":"slow","difficulty":3},"challenge":{"id":"c1","randomData":"abc"}}`))
	require.NoError(t, err)
	require.Equal(t, "slow", c.Rules.Algorithm)
	require.Equal(t, 3, c.Rules.Difficulty)
	require.Equal(t, "c1", c.Challenge.ID)

	_, err = ParseChallenge([]byte("<p>nothing</p>"))
	require.Error(t, err)

	_, err = ParseChallenge(challengePage(`{"rules":{},"challenge":{"id":"c1"}}`))
	require.Error(t, err)
}

func TestSolve_RejectionAndPlainPages(t *testing.T) {
	s := NewSolver(nil, nil)

	_, err := s.Solve(context.Background(), "https://example.com/a", challengePage("null"), nil)
	require.ErrorIs(t, err, ErrRejected)

	cookie, err := s.Solve(context.Background(), "https://example.com/a", []byte("<p>ok</p>"), nil)
	require.NoError(t, err)
	require.Empty(t, cookie)
}

func TestSolveChallenge_ProofOfWork(t *testing.T) {
	c := &Challenge{}
	c.Rules.Algorithm = "fast"
	c.Rules.Difficulty = 2
	c.Challenge.RandomData = "random"

	sol, err := solveChallenge(context.Background(), c)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sol.hash, "00"))

	sum := sha256.Sum256([]byte("random" + strconv.Itoa(sol.nonce)))
	require.Equal(t, hex.EncodeToString(sum[:]), sol.hash)
}

func TestSolveChallenge_Preact(t *testing.T) {
	c := &Challenge{}
	c.Rules.Algorithm = "preact"
	c.Challenge.RandomData = "random"

	start := time.Now()
	sol, err := solveChallenge(context.Background(), c)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	sum := sha256.Sum256([]byte("random"))
	require.Equal(t, hex.EncodeToString(sum[:]), sol.hash)
}

func TestSolveChallenge_Cancelled(t *testing.T) {
	c := &Challenge{}
	c.Rules.Algorithm = "metarefresh"
	c.Rules.Difficulty = 10
	c.Challenge.RandomData = "random"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solveChallenge(ctx, c)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPassURL(t *testing.T) {
	page, _ := url.Parse("https://blog.example.com/posts/1?ref=x")

	c := &Challenge{}
	c.Challenge.ID = "abc"

	c.Rules.Algorithm = "fast"
	got, err := url.Parse(passURL(page, c, solution{hash: "00ff", nonce: 12, elapsed: 340 * time.Millisecond}))
	require.NoError(t, err)
	require.Equal(t, "blog.example.com", got.Host)
	require.Equal(t, passPath, got.Path)
	require.Equal(t, "abc", got.Query().Get("id"))
	require.Equal(t, "/posts/1?ref=x", got.Query().Get("redir"))
	require.Equal(t, "00ff", got.Query().Get("response"))
	require.Equal(t, "12", got.Query().Get("nonce"))
	require.Equal(t, "340", got.Query().Get("elapsedTime"))

	c.Rules.Algorithm = "metarefresh"
	got, _ = url.Parse(passURL(page, c, solution{hash: "raw"}))
	require.Equal(t, "raw", got.Query().Get("challenge"))

	c.Rules.Algorithm = "preact"
	got, _ = url.Parse(passURL(page, c, solution{hash: "h"}))
	require.Equal(t, "h", got.Query().Get("result"))
}

func TestCookieHeader(t *testing.T) {
	require.Empty(t, CookieHeader(nil))
	require.Equal(t, "a=1; b=2", CookieHeader([]*http.Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}))
}

