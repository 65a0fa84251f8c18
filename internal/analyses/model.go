package analyses

import (
	"encoding/json"
	"time"
)

// Analysis is one recorded engine run.
type Analysis struct {
	ID            string          `json:"id"`
	Tool          Tool            `json:"tool"`
	UserID        string          `json:"userId"`
	InputHash     string          `json:"inputHash"`
	InputPreview  string          `json:"inputPreview"`
	EngineVersion string          `json:"engineVersion"`
	Result        json.RawMessage `json:"result"`
	DurationMs    float64         `json:"durationMs"`
	Cached        bool            `json:"cached"`
	CreatedAt     time.Time       `json:"createdAt"`
}
