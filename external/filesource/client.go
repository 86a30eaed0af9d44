// Package filesource implements the engine's fetch capabilities over a
// directory of pre-extracted fixture documents. The scraping layer
// drops one JSON document per schedule source; this client reads and
// validates them. It deliberately has the same weak contract as a live
// scraper: best-effort content, no ordering or matchweek guarantees.
package filesource

import (
	"context"
	"io/fs"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/premtable/matchday/internal/domain/fixture"
	"github.com/premtable/matchday/internal/platform/logging"
	"github.com/premtable/matchday/internal/usecase"
)

type ClientConfig struct {
	// FS is the document root. Production wires os.DirFS over the
	// scraper's drop directory; tests wire fstest.MapFS.
	FS     fs.FS
	Logger *logging.Logger
}

type Client struct {
	fsys   fs.FS
	logger *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		fsys:   cfg.FS,
		logger: logger,
	}
}

type sourceDoc struct {
	Source    string      `json:"source"`
	FetchedAt time.Time   `json:"fetchedAt"`
	Fixtures  []sourceRow `json:"fixtures"`
}

type sourceRow struct {
	ID               string    `json:"id"`
	Competition      string    `json:"competition,omitempty"`
	CompetitionRound string    `json:"competitionRound,omitempty"`
	HomeTeam         string    `json:"homeTeam"`
	AwayTeam         string    `json:"awayTeam"`
	Date             time.Time `json:"date"`
	Matchweek        int       `json:"matchweek"`
	HomeScore        *int      `json:"homeScore,omitempty"`
	AwayScore        *int      `json:"awayScore,omitempty"`
	Status           string    `json:"status"`
	IsDerby          bool      `json:"isDerby,omitempty"`
}

// FetchBySource reads one schedule source document. Every failure is
// marked usecase.ErrFetchFailed so the aggregator can treat the source
// as absent without inspecting the cause.
func (c *Client) FetchBySource(ctx context.Context, source string) ([]fixture.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, crerr.Mark(err, usecase.ErrFetchFailed)
	}
	if c.fsys == nil {
		return nil, crerr.Mark(crerr.New("filesource: no document root configured"), usecase.ErrFetchFailed)
	}

	path := strings.TrimSuffix(strings.TrimPrefix(source, "/"), ".json") + ".json"
	data, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read source document %q", path), usecase.ErrFetchFailed)
	}

	var doc sourceDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode source document %q", path), usecase.ErrFetchFailed)
	}

	out := make([]fixture.Fixture, 0, len(doc.Fixtures))
	for _, row := range doc.Fixtures {
		f := fixture.Fixture{
			ID:               row.ID,
			Competition:      row.Competition,
			CompetitionRound: row.CompetitionRound,
			HomeTeam:         row.HomeTeam,
			AwayTeam:         row.AwayTeam,
			Date:             row.Date,
			Matchweek:        row.Matchweek,
			HomeScore:        row.HomeScore,
			AwayScore:        row.AwayScore,
			Status:           fixture.NormalizeStatus(row.Status),
			IsDerby:          row.IsDerby,
		}
		if err := f.Validate(); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "source document %q", path), usecase.ErrFetchFailed)
		}
		out = append(out, f)
	}

	c.logger.DebugContext(ctx, "fetched source document",
		"source", source,
		"fixtures", len(out),
		"fetched_at", doc.FetchedAt,
	)

	return out, nil
}

// LeagueSource adapts one named document to the aggregator's
// LeagueFetcher contract. Primary and fallback league feeds are two
// instances pointed at different documents.
type LeagueSource struct {
	client *Client
	source string
}

func NewLeagueSource(client *Client, source string) *LeagueSource {
	return &LeagueSource{client: client, source: source}
}

func (s *LeagueSource) FetchLeagueFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	return s.client.FetchBySource(ctx, s.source)
}
