package competition

// ID identifies one competition in the fixed scope this engine covers.
type ID string

const (
	PremierLeague   ID = "premier-league"
	FACup           ID = "fa-cup"
	LeagueCup       ID = "league-cup"
	ChampionsLeague ID = "champions-league"
	EuropaLeague    ID = "europa-league"
)

// Competition is immutable configuration: the canonical display label
// and the external schedule source a fetcher should be pointed at.
// One source may serve several cups from a single page, so the
// aggregator batches fetches by ScheduleSource rather than by ID.
type Competition struct {
	ID             ID
	Label          string
	ScheduleSource string
}

var all = []Competition{
	{ID: PremierLeague, Label: "Premier League", ScheduleSource: "sources/premier-league"},
	{ID: FACup, Label: "FA Cup", ScheduleSource: "sources/domestic-cups"},
	{ID: LeagueCup, Label: "League Cup", ScheduleSource: "sources/domestic-cups"},
	{ID: ChampionsLeague, Label: "Champions League", ScheduleSource: "sources/european-cups"},
	{ID: EuropaLeague, Label: "Europa League", ScheduleSource: "sources/european-cups"},
}

func All() []Competition {
	out := make([]Competition, len(all))
	copy(out, all)
	return out
}

func Get(id ID) (Competition, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Competition{}, false
}

func IsLeague(id ID) bool {
	return id == PremierLeague
}

// Cups returns the cup competitions among the requested ids, in the
// fixed enumeration order so fetch batching is deterministic.
func Cups(ids map[ID]bool) []Competition {
	out := make([]Competition, 0, len(all))
	for _, c := range all {
		if IsLeague(c.ID) {
			continue
		}
		if ids[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
