package schedule

import (
	"fmt"
	"strconv"
)

const (
	// gameIDPrefixLen covers the season year plus the first type digit.
	gameIDPrefixLen = 5

	PreseasonSequenceMax = 20000
	SpecialSequenceMin   = 40000
)

// GameID is a decoded upstream identifier such as 2023020010.
type GameID struct {
	Raw      int64
	Season   int
	Sequence int
}

// ParseGameID decodes the season and sequence number of a game id.
// The sequence number is what remains after stripping the first five digits,
// so 2023020010 yields 20010.
func ParseGameID(id int64) (GameID, error) {
	raw := strconv.FormatInt(id, 10)
	if id <= 0 || len(raw) <= gameIDPrefixLen {
		return GameID{}, fmt.Errorf("game id %d: expected more than %d digits", id, gameIDPrefixLen)
	}

	season, err := strconv.Atoi(raw[:4])
	if err != nil {
		return GameID{}, fmt.Errorf("game id %d: parse season: %w", id, err)
	}
	sequence, err := strconv.Atoi(raw[gameIDPrefixLen:])
	if err != nil {
		return GameID{}, fmt.Errorf("game id %d: parse sequence: %w", id, err)
	}

	return GameID{
		Raw:      id,
		Season:   season,
		Sequence: sequence,
	}, nil
}

func (g GameID) IsPreseason() bool {
	return g.Sequence < PreseasonSequenceMax
}

// IsSpecial marks all-star and other exhibition ranges.
func (g GameID) IsSpecial() bool {
	return g.Sequence >= SpecialSequenceMin
}
