package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillsync-backend/lib/scrapers/skillssh"
	"skillsync-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const structuralPage = `<html><body><ol>
	<li>1 <a href="/acme/widget/cool-skill">cool-skill acme/widget 61.0K</a></li>
	<li>2 <a href="/foo/bar/baz-skill">baz-skill foo/bar 12.3K</a></li>
</ol></body></html>`

const renderedPage = `<html><body>
	<div>[1 ### cool-skill acme/widget 61.0K](https://skills.sh/acme/widget/cool-skill)</div>
	<div>[2 ### tiny-skill foo/bar 5](https://skills.sh/foo/bar/tiny-skill)</div>
</body></html>`

func testService(t *testing.T, handler http.Handler) (Service, string) {
	cleanup := telemetry.SetupForTesting(t, "test:services/leaderboard")
	t.Cleanup(cleanup)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := skillssh.NewClient(skillssh.ClientOptions{})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	for _, category := range skillssh.Categories() {
		cfg.SourceURLs[category] = fmt.Sprintf("%s/%s", server.URL, category)
	}

	return NewService(client, cfg), cfg.OutputDir
}

func TestSyncStructural(t *testing.T) {
	service, dir := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, structuralPage)
	}))

	snapshot, err := service.Sync(context.Background(), skillssh.CategoryAllTime)
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.Count)

	require.Equal(t, "cool-skill", snapshot.Rows[0].SkillName)
	require.Equal(t, "acme/widget", snapshot.Rows[0].OwnerRepo)
	require.Equal(t, "61.0K", snapshot.Rows[0].Installs)
	require.Nil(t, snapshot.Rows[0].Rank)

	read, err := ReadSnapshot(dir, skillssh.CategoryAllTime)
	require.NoError(t, err)
	require.Equal(t, snapshot.Rows, read.Rows)
}

func TestSyncFallsBackOnEmptyExtraction(t *testing.T) {
	service, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, renderedPage)
	}))

	snapshot, err := service.Sync(context.Background(), skillssh.CategoryTrending)
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.Count)

	require.Equal(t, "cool-skill", snapshot.Rows[0].SkillName)
	require.Equal(t, "61.0K", snapshot.Rows[0].Installs)
	// the fallback captured "5" but normalization rejects it
	require.Equal(t, "tiny-skill", snapshot.Rows[1].SkillName)
	require.Empty(t, snapshot.Rows[1].Installs)
}

func TestSyncFallsBackOnLowQualityExtraction(t *testing.T) {
	// structural parse finds rows, but most installs are tiny bare
	// integers; the markdown-ish text alongside has the real counts
	page := `<html><body>
	<a href="/acme/widget/skill-a">some-skill 3</a>
	<a href="/acme/widget/skill-b">some-skill 7</a>
	<a href="/acme/widget/skill-c">some-skill 12.3K</a>
	<div>[skill-a acme/widget 61.0K](https://skills.sh/acme/widget/skill-a)</div>
	</body></html>`
	service, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	snapshot, err := service.Sync(context.Background(), skillssh.CategoryHot)
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.Count)
	require.Equal(t, "skill-a", snapshot.Rows[0].SkillName)
	require.Equal(t, "61.0K", snapshot.Rows[0].Installs)
}

func TestSyncFetchFailure(t *testing.T) {
	service, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))

	_, err := service.Sync(context.Background(), skillssh.CategoryAllTime)
	require.Error(t, err)
}

func TestSyncUnknownCategory(t *testing.T) {
	service, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, structuralPage)
	}))

	_, err := service.Sync(context.Background(), "weekly")
	require.Error(t, err)
}

func TestSyncAllContainsFailures(t *testing.T) {
	service, dir := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+skillssh.CategoryTrending {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, structuralPage)
	}))

	outcomes := service.SyncAll(context.Background())
	require.Len(t, outcomes, 3)

	byCategory := map[string]Outcome{}
	for _, outcome := range outcomes {
		byCategory[outcome.Category] = outcome
	}
	require.NoError(t, byCategory[skillssh.CategoryAllTime].Err)
	require.Error(t, byCategory[skillssh.CategoryTrending].Err)
	require.NoError(t, byCategory[skillssh.CategoryHot].Err)

	// the failed category left no snapshot behind, the others did
	_, err := ReadSnapshot(dir, skillssh.CategoryTrending)
	require.Error(t, err)
	read, err := ReadSnapshot(dir, skillssh.CategoryHot)
	require.NoError(t, err)
	require.Equal(t, 2, read.Count)
}
