package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyView is one page-view event recorded by the external tracker.
// Rows are immutable once written; this service only reads them.
type PropertyView struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID      string    `gorm:"column:property_id;not null;index" json:"property_id"`
	PropertyAddress string    `gorm:"column:property_address" json:"property_address"`
	UserEmail       *string   `gorm:"column:user_email" json:"user_email"`
	UserFirstName   *string   `gorm:"column:user_first_name" json:"user_first_name"`
	UserLastName    *string   `gorm:"column:user_last_name" json:"user_last_name"`
	DeviceType      string    `gorm:"column:device_type" json:"device_type"`
	DurationSeconds int       `gorm:"column:duration_seconds;not null;default:0" json:"duration_seconds"`
	ActiveSeconds   int       `gorm:"column:active_time_seconds;not null;default:0" json:"active_time_seconds"`

	ScrolledToBottom  bool `gorm:"column:scrolled_to_bottom;not null;default:false" json:"scrolled_to_bottom"`
	ViewedDescription bool `gorm:"column:viewed_description;not null;default:false" json:"viewed_description"`
	ViewedRepairs     bool `gorm:"column:viewed_repairs;not null;default:false" json:"viewed_repairs"`
	ViewedPhotos      bool `gorm:"column:viewed_photos;not null;default:false" json:"viewed_photos"`
	ClickedMorePhotos bool `gorm:"column:clicked_more_photos;not null;default:false" json:"clicked_more_photos"`
	ClickedShare      bool `gorm:"column:clicked_share;not null;default:false" json:"clicked_share"`
	ZoomedMap         bool `gorm:"column:zoomed_map;not null;default:false" json:"zoomed_map"`
	FullViewAchieved  bool `gorm:"column:full_view_achieved;not null;default:false" json:"full_view_achieved"`

	UTMSource *string   `gorm:"column:utm_source" json:"utm_source"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName keeps the tracker's historical table name.
func (PropertyView) TableName() string {
	return "property_analytics"
}
