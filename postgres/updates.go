package postgres

import (
	"fmt"

	"github.com/xy-planning-network/ridewitus"
)

// An Updates is a map of key-value pairs where key is the database column and the value is the data.
type Updates map[string]any

func (u Updates) valid() error {
	if len(u) == 0 {
		return fmt.Errorf("%w: no columns set", ridewitus.ErrMissingData)
	}

	for col, v := range u {
		if e, ok := v.(ridewitus.Enumerable); ok {
			if err := e.Valid(); err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
		}
	}

	return nil
}
