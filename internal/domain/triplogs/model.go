package triplogs

import "time"

const (
	VisitPlanned   = "planned"
	VisitUnplanned = "unplanned"
	VisitSkipped   = "skipped"
)

// VisitStatusLabels maps visit statuses to display labels.
var VisitStatusLabels = map[string]string{
	VisitPlanned:   "계획대로 방문",
	VisitUnplanned: "계획에 없던 방문",
	VisitSkipped:   "계획했지만 미방문",
}

func IsValidVisitStatus(status string) bool {
	_, ok := VisitStatusLabels[status]
	return ok
}

// TripLog records an actual visit; when linked to a planned destination with
// a blank place name, the place fields are copied from the destination.
type TripLog struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	TripID         string    `gorm:"type:uuid;index;not null"`
	DestinationID  *string   `gorm:"type:uuid"`
	PlaceName      string    `gorm:"size:100;not null"`
	Address        string    `gorm:"size:255"`
	Latitude       *float64  `gorm:"type:numeric(10,7)"`
	Longitude      *float64  `gorm:"type:numeric(10,7)"`
	VisitDate      time.Time `gorm:"type:date;not null"`
	VisitTime      *string   `gorm:"size:5"`
	DayNumber      *int      `gorm:""`
	ActualDuration *int      `gorm:""`
	Rating         *int      `gorm:""`
	Review         string    `gorm:"type:text"`
	VisitStatus    string    `gorm:"size:20;not null;default:planned"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

type TripLogPhoto struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	LogID     string    `gorm:"type:uuid;index;not null"`
	ImageURL  string    `gorm:"type:text;not null"`
	Caption   string    `gorm:"size:200"`
	Order     int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TripLogWithPhotos is the read shape for every log endpoint.
type TripLogWithPhotos struct {
	TripLog
	Photos []TripLogPhoto
}

type TripLogInput struct {
	DestinationID  *string
	PlaceName      string
	Address        string
	Latitude       *float64
	Longitude      *float64
	VisitDate      time.Time
	VisitTime      *string
	ActualDuration *int
	Rating         *int
	Review         string
	VisitStatus    string
	PhotoURLs      []string
}
