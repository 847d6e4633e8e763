package domain

import (
	"time"

	"github.com/google/uuid"
)

// PricePredictedEvent публикуется после каждой успешной оценки.
type PricePredictedEvent struct {
	EventID    uuid.UUID
	Features   HouseFeatures
	Price      float64
	Estimator  string
	OccurredAt time.Time
}
