package entity

import (
	"encoding/json"
	"fmt"
)

// Mark is the value of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	PlayerX
	PlayerO
)

// NoLocation marks the initial history entry which was not produced by a move.
const NoLocation = -1

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

func (that Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	switch value {
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	case "":
		*that = Empty
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, value)
	}

	return nil
}

// Next returns the opposite player's mark.
func (that Mark) Next() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
