package stackup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/stackbuddy/src/stackup"
)

func newServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_UserScopedPaths(t *testing.T) {
	srv := newServer(t, map[string]string{
		"/api/get-user/7":          `{"id":7,"username":"ada","nationality":"NG","career_level":"Senior","role":"Builder","tech_stack":"Go"}`,
		"/api/get-user-balance/7":  `{"id":1,"user_id":"7","total_earnings":90,"total_withdrawn":48,"withdrawal_methods":"paypal","current_balance":42,"created_at":"","updated_at":""}`,
		"/api/get-user-progress/7": `{"id":1,"user_id":"7","submissions":5,"submitted":4,"rewarded":3,"total_quest_earings":120}`,
	})
	c := stackup.NewClient(srv.URL+"/api/", stackup.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	u, err := c.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stackup.User{ID: 7, Username: "ada", Nationality: "NG", CareerLevel: "Senior", Role: "Builder", TechStack: "Go"}, u)

	b, err := c.GetUserBalance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 42, b.CurrentBalance)
	assert.Equal(t, "paypal", b.WithdrawalMethods)

	p, err := c.GetUserProgress(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stackup.Progress{ID: 1, UserID: "7", Submissions: 5, Submitted: 4, Rewarded: 3, TotalQuestEarnings: 120}, p)
}

func TestClient_FeaturedLists(t *testing.T) {
	srv := newServer(t, map[string]string{
		"/stack-featured-campaigns":  `[{"id":1,"title":"A","sub_title":"a","quest_count":2},{"id":2,"title":"B","sub_title":"b","quest_count":0}]`,
		"/stack-featured-pathways":   `[]`,
		"/stack-featured-hackathons": `[{"id":9,"title":"H","price":500,"participating":30,"location":1}]`,
	})
	c := stackup.NewClient(srv.URL, stackup.WithHTTPClient(srv.Client()), stackup.WithRateLimit(1000))
	ctx := context.Background()

	campaigns, err := c.FeaturedCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "A", campaigns[0].Title)
	assert.Equal(t, "B", campaigns[1].Title)

	pathways, err := c.FeaturedPathways(ctx)
	require.NoError(t, err)
	assert.Empty(t, pathways)

	hackathons, err := c.FeaturedHackathons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []stackup.Hackathon{{ID: 9, Title: "H", Price: 500, Participating: 30, Location: 1}}, hackathons)
}

func TestClient_FailuresCollapseToErrFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stack-featured-campaigns":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/stack-featured-pathways":
			_, _ = w.Write([]byte(`{"not":"a list"`))
		}
	}))

	c := stackup.NewClient(srv.URL, stackup.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := c.FeaturedCampaigns(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "http 500")

	_, err = c.FeaturedPathways(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "malformed json")

	srv.Close()
	_, err = c.FeaturedHackathons(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "transport")
}

func TestClient_SendsUserAgentAndNoAuth(t *testing.T) {
	var agent, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := stackup.NewClient(srv.URL, stackup.WithHTTPClient(srv.Client()), stackup.WithUserAgent("stack-buddy"))
	_, err := c.FeaturedPathways(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stack-buddy", agent)
	assert.Empty(t, auth)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, stackup.DefaultBaseURL, stackup.NewClient("").BaseURL())
	assert.Equal(t, "http://x/api", stackup.NewClient(" http://x/api/ ").BaseURL())
}

func TestClient_SchemaMismatchIsFetchFailure(t *testing.T) {
	notFound := `{"message":"User not found"}`
	srv := newServer(t, map[string]string{
		"/get-user/1":                notFound,
		"/get-user-balance/1":        notFound,
		"/get-user-progress/1":       `{"submissions":1,"submitted":1,"rewarded":1}`,
		"/stack-featured-campaigns":  `[{"title":"A","sub_title":"a","quest_count":1},{"name":"B"}]`,
		"/stack-featured-pathways":   `[{"title":"P","modules":null,"skills":1}]`,
		"/stack-featured-hackathons": `{"data":[]}`,
	})
	c := stackup.NewClient(srv.URL, stackup.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := c.GetUser(ctx, 1)
	assert.ErrorIs(t, err, stackup.ErrFetch, "user")

	b, err := c.GetUserBalance(ctx, 1)
	assert.ErrorIs(t, err, stackup.ErrFetch, "balance")
	assert.ErrorContains(t, err, "current_balance")
	assert.Zero(t, b.CurrentBalance)

	_, err = c.GetUserProgress(ctx, 1)
	assert.ErrorIs(t, err, stackup.ErrFetch, "progress without earnings")

	_, err = c.FeaturedCampaigns(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "one campaign missing fields")

	_, err = c.FeaturedPathways(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "null field")

	_, err = c.FeaturedHackathons(ctx)
	assert.ErrorIs(t, err, stackup.ErrFetch, "object instead of list")
}
