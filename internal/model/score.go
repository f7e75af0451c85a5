package model

import "time"

// ScorePoint is one persisted indicator score. Unique on (IndicatorID, Date);
// recomputation overwrites in place. Value is always within [-1.0, 1.0].
type ScorePoint struct {
	IndicatorID int64
	Date        time.Time
	Value       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
