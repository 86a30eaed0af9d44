package fixture

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// snapshotVersion guards against decoding payloads written by an
// incompatible schema.
const snapshotVersion = 1

type snapshotDoc struct {
	Version  int           `json:"version"`
	SavedAt  time.Time     `json:"savedAt"`
	Fixtures []snapshotRow `json:"fixtures"`
}

type snapshotRow struct {
	ID               string    `json:"id"`
	Competition      string    `json:"competition"`
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

// EncodeSnapshot serializes a fixture list for the persistence layer
// or the snapshot cache.
func EncodeSnapshot(fixtures []Fixture, savedAt time.Time) ([]byte, error) {
	doc := snapshotDoc{
		Version:  snapshotVersion,
		SavedAt:  savedAt.UTC(),
		Fixtures: make([]snapshotRow, 0, len(fixtures)),
	}
	for _, f := range fixtures {
		doc.Fixtures = append(doc.Fixtures, snapshotRow(f))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode fixture snapshot: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func DecodeSnapshot(data []byte) ([]Fixture, time.Time, error) {
	var doc snapshotDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode fixture snapshot: %w", err)
	}
	if doc.Version != snapshotVersion {
		return nil, time.Time{}, fmt.Errorf("decode fixture snapshot: unsupported version %d", doc.Version)
	}

	out := make([]Fixture, 0, len(doc.Fixtures))
	for _, row := range doc.Fixtures {
		out = append(out, Fixture(row))
	}
	return out, doc.SavedAt, nil
}
