package trips

import "time"

const (
	StatusPlanning  = "planning"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// StatusLabels maps trip statuses to their display labels.
var StatusLabels = map[string]string{
	StatusPlanning:  "계획 중",
	StatusOngoing:   "여행 중",
	StatusCompleted: "완료",
}

func IsValidStatus(status string) bool {
	_, ok := StatusLabels[status]
	return ok
}

const (
	CategoryAttraction    = "attraction"
	CategoryRestaurant    = "restaurant"
	CategoryCafe          = "cafe"
	CategoryAccommodation = "accommodation"
	CategoryShopping      = "shopping"
	CategoryTransport     = "transport"
	CategoryOther         = "other"
)

// DestinationCategoryLabels maps destination categories to display labels.
var DestinationCategoryLabels = map[string]string{
	CategoryAttraction:    "관광지",
	CategoryRestaurant:    "음식점",
	CategoryCafe:          "카페",
	CategoryAccommodation: "숙소",
	CategoryShopping:      "쇼핑",
	CategoryTransport:     "교통",
	CategoryOther:         "기타",
}

func IsValidDestinationCategory(category string) bool {
	_, ok := DestinationCategoryLabels[category]
	return ok
}

// Trip is the aggregate root; every other entity is owned by exactly one
// trip and destroyed with it.
type Trip struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Thumbnail   *string   `gorm:"type:text"`
	IsPublic    bool      `gorm:"not null;default:false"`
	Status      string    `gorm:"size:20;not null;default:planning"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// DurationDays is the inclusive number of calendar days the trip spans.
func (t Trip) DurationDays() int {
	return daysBetweenInclusive(t.StartDate, t.EndDate)
}

type Destination struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	TripID            string    `gorm:"type:uuid;index;not null"`
	Name              string    `gorm:"size:100;not null"`
	Address           string    `gorm:"size:255"`
	Latitude          *float64  `gorm:"type:numeric(10,7)"`
	Longitude         *float64  `gorm:"type:numeric(10,7)"`
	Day               int       `gorm:"not null;default:1"`
	Order             int       `gorm:"column:sort_order;not null;default:0"`
	PlannedTime       *string   `gorm:"size:5"`
	EstimatedDuration *int      `gorm:""`
	EstimatedCost     int64     `gorm:"type:bigint;not null;default:0"`
	Category          string    `gorm:"size:20;not null;default:attraction"`
	Memo              string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// DayPlan is one calendar day's container within the trip's date range;
// unique per (trip, day_number) and regenerated whenever the range changes.
type DayPlan struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;index;not null;uniqueIndex:uq_day_plans_trip_day"`
	DayNumber int       `gorm:"not null;uniqueIndex:uq_day_plans_trip_day"`
	Date      time.Time `gorm:"type:date;not null"`
	Memo      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DayPlanView decorates a day plan with that day's planned destinations and
// their summed estimated cost.
type DayPlanView struct {
	DayPlan
	EstimatedCost int64
	Destinations  []Destination
}

type DestinationInput struct {
	Name              string
	Address           string
	Latitude          *float64
	Longitude         *float64
	Day               int
	Order             int
	PlannedTime       *string
	EstimatedDuration *int
	EstimatedCost     int64
	Category          string
	Memo              string
}

type CreateTripInput struct {
	UserID       string
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Thumbnail    *string
	IsPublic     bool
	Destinations []DestinationInput
}

// OptionalNullableString distinguishes "not sent" from "sent as null".
type OptionalNullableString struct {
	Set   bool
	Value *string
}

type UpdateTripInput struct {
	UserID      string
	TripID      string
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Thumbnail   OptionalNullableString
	IsPublic    *bool
	Status      *string
}
