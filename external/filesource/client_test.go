package filesource

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"

	"github.com/premtable/matchday/internal/usecase"
)

const leagueDoc = `{
  "source": "sources/premier-league",
  "fetchedAt": "2026-02-01T06:00:00Z",
  "fixtures": [
    {
      "id": "pl-240",
      "homeTeam": "Arsenal",
      "awayTeam": "Chelsea",
      "date": "2026-01-31T15:00:00Z",
      "matchweek": 23,
      "homeScore": 2,
      "awayScore": 1,
      "status": "ft"
    },
    {
      "id": "pl-241",
      "homeTeam": "Everton",
      "awayTeam": "Fulham",
      "date": "2026-02-07T15:00:00Z",
      "matchweek": 24,
      "status": ""
    }
  ]
}`

func TestFetchBySource_ParsesDocument(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{FS: fstest.MapFS{
		"sources/premier-league.json": &fstest.MapFile{Data: []byte(leagueDoc)},
	}})

	fixtures, err := client.FetchBySource(context.Background(), "sources/premier-league")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("fixture count = %d, want 2", len(fixtures))
	}

	played := fixtures[0]
	if played.ID != "pl-240" || *played.HomeScore != 2 || *played.AwayScore != 1 {
		t.Fatalf("unexpected played fixture: %+v", played)
	}
	if played.Status != "FT" {
		t.Fatalf("status not normalized: %q", played.Status)
	}
	if !played.IsFinished() {
		t.Fatalf("FT fixture must count as finished")
	}

	upcoming := fixtures[1]
	if upcoming.Status != "SCHEDULED" {
		t.Fatalf("blank status must default to SCHEDULED, got %q", upcoming.Status)
	}
	if upcoming.HomeScore != nil || upcoming.AwayScore != nil {
		t.Fatalf("absent scores must decode as nil: %+v", upcoming)
	}
}

func TestFetchBySource_MissingDocumentIsFetchFailure(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{FS: fstest.MapFS{}})

	_, err := client.FetchBySource(context.Background(), "sources/domestic-cups")
	if !errors.Is(err, usecase.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchBySource_MalformedDocumentIsFetchFailure(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{FS: fstest.MapFS{
		"sources/premier-league.json": &fstest.MapFile{Data: []byte(`{"fixtures": [`)},
	}})

	_, err := client.FetchBySource(context.Background(), "sources/premier-league")
	if !errors.Is(err, usecase.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchBySource_ScoreInvariantViolationIsFetchFailure(t *testing.T) {
	t.Parallel()

	doc := `{
  "source": "sources/premier-league",
  "fixtures": [
    {
      "id": "pl-1",
      "homeTeam": "Arsenal",
      "awayTeam": "Chelsea",
      "date": "2026-01-31T15:00:00Z",
      "homeScore": 2,
      "status": "FT"
    }
  ]
}`
	client := NewClient(ClientConfig{FS: fstest.MapFS{
		"sources/premier-league.json": &fstest.MapFile{Data: []byte(doc)},
	}})

	_, err := client.FetchBySource(context.Background(), "sources/premier-league")
	if !errors.Is(err, usecase.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestLeagueSource_AdaptsNamedDocument(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{FS: fstest.MapFS{
		"sources/premier-league.json": &fstest.MapFile{Data: []byte(leagueDoc)},
	}})
	league := NewLeagueSource(client, "sources/premier-league")

	fixtures, err := league.FetchLeagueFixtures(context.Background())
	if err != nil {
		t.Fatalf("fetch league: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("fixture count = %d, want 2", len(fixtures))
	}
}
