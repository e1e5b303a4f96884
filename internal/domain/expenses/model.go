package expenses

import "time"

const (
	CategoryTransport     = "transport"
	CategoryAccommodation = "accommodation"
	CategoryFood          = "food"
	CategoryAttraction    = "attraction"
	CategoryShopping      = "shopping"
	CategoryOther         = "other"
)

// BudgetCategories lists the closed category set in display order. Both
// budgets and expenses draw from this set; the comparison view emits one row
// per entry even when no budget exists.
var BudgetCategories = []string{
	CategoryTransport,
	CategoryAccommodation,
	CategoryFood,
	CategoryAttraction,
	CategoryShopping,
	CategoryOther,
}

// BudgetCategoryLabels maps categories to display labels.
var BudgetCategoryLabels = map[string]string{
	CategoryTransport:     "교통",
	CategoryAccommodation: "숙소",
	CategoryFood:          "식비",
	CategoryAttraction:    "관광/입장료",
	CategoryShopping:      "쇼핑",
	CategoryOther:         "기타",
}

func IsValidBudgetCategory(category string) bool {
	_, ok := BudgetCategoryLabels[category]
	return ok
}

const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentOther = "other"
)

// PaymentMethodLabels maps payment methods to display labels.
var PaymentMethodLabels = map[string]string{
	PaymentCash:  "현금",
	PaymentCard:  "카드",
	PaymentOther: "기타",
}

func IsValidPaymentMethod(method string) bool {
	_, ok := PaymentMethodLabels[method]
	return ok
}

// Budget is a planned spending ceiling for one category; unique per
// (trip, category), written with upsert semantics.
type Budget struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;index;not null;uniqueIndex:uq_budgets_trip_category"`
	Category  string    `gorm:"size:20;not null;uniqueIndex:uq_budgets_trip_category"`
	Amount    int64     `gorm:"type:bigint;not null"`
	Memo      string    `gorm:"size:200"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Expense struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	TripID        string    `gorm:"type:uuid;index;not null"`
	Category      string    `gorm:"size:20;not null"`
	Amount        int64     `gorm:"type:bigint;not null"`
	Description   string    `gorm:"size:200;not null"`
	ExpenseDate   time.Time `gorm:"type:date;not null"`
	ExpenseTime   *string   `gorm:"size:5"`
	DayNumber     *int      `gorm:""`
	DestinationID *string   `gorm:"type:uuid"`
	PaymentMethod string    `gorm:"size:20;not null;default:card"`
	ReceiptImage  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

type SetBudgetInput struct {
	UserID   string
	TripID   string
	Category string
	Amount   int64
	Memo     string
}

type ExpenseInput struct {
	Category      string
	Amount        int64
	Description   string
	ExpenseDate   time.Time
	ExpenseTime   *string
	DestinationID *string
	PaymentMethod string
	ReceiptImage  string
}
