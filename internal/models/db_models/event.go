package db_models

import "time"

// Column widths of event.title and event.location, in characters.
const (
	TitleMaxLen    = 100
	LocationMaxLen = 100
)

// Event dates carry no clock part; they are stored as UTC midnight.
type Event struct {
	EventID     uint      `gorm:"column:event_id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;size:100;not null"`
	Description string    `gorm:"column:description;type:text"`
	Location    string    `gorm:"column:location;size:100;not null"`
	StartDate   time.Time `gorm:"column:start_date;not null;index"`
	EndDate     time.Time `gorm:"column:end_date;not null"`
	CategoryID  uint      `gorm:"column:category_id;not null;index"`
	Category    Category
}

func (Event) TableName() string {
	return "event"
}
