package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/stackbuddy/src/stackup"
)

func TestPrintCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCommands(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "TOKEN")
	assert.Contains(t, lines[1], "!help")
	assert.Contains(t, lines[1], "#1F8B4C")
	assert.Contains(t, lines[9], "!get-calendar")
}

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get-user-balance/7":
			_, _ = w.Write([]byte(`{"current_balance": 12}`))
		case "/stack-featured-hackathons":
			_, _ = w.Write([]byte(`[{"title":"Jam","price":5,"participating":2,"location":1}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	client := stackup.NewClient(srv.URL, stackup.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	got, err := fetchText(ctx, client, "balance", 7)
	require.NoError(t, err)
	assert.Equal(t, "Your StackUp balance is: $12", got)

	got, err = fetchText(ctx, client, "hackathons", 0)
	require.NoError(t, err)
	assert.Equal(t, "**Upcoming hackathons:** \n\n**Title:** Jam\n**Price:** $5\n**Participating:** 2\n**Location:** 1\n\n", got)

	_, err = fetchText(ctx, client, "username", 7)
	assert.ErrorIs(t, err, stackup.ErrFetch)

	_, err = fetchText(ctx, client, "calendar", 7)
	assert.ErrorContains(t, err, "unknown resource")
}

func TestRootHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "fetch", "link", "commands"} {
		assert.True(t, names[want], want)
	}
}
