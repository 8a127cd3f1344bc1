package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

type SyncMode string

const (
	FULLREFRESH SyncMode = "full_refresh"
	INCREMENTAL SyncMode = "incremental"
)

func (s *SyncMode) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch SyncMode(value) {
	case FULLREFRESH, INCREMENTAL, SyncMode(""):
		*s = SyncMode(value)
		return nil
	default:
		return fmt.Errorf("unsupported sync mode [%s]; valid are %v", value, []SyncMode{FULLREFRESH, INCREMENTAL})
	}
}
