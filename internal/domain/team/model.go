package team

import "fmt"

// Team is a club record with its display name and the short form some
// sources use instead.
type Team struct {
	Name  string
	Short string
	Crest string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
