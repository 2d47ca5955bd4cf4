package models

import (
	"time"

	"github.com/deelmap/admin-backend/pkg/enums"
	"github.com/google/uuid"
)

// NotificationHistory is one attempted SMS send logged by the external
// notification engine. Read-only here apart from retention sweeps.
type NotificationHistory struct {
	ID                    uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID            string          `gorm:"column:property_id;not null;index" json:"property_id"`
	PropertyAddress       string          `gorm:"column:property_address" json:"property_address"`
	SellerID              *uuid.UUID      `gorm:"type:uuid;column:seller_id" json:"seller_id"`
	SellerPhone           string          `gorm:"column:seller_phone" json:"seller_phone"`
	ViewsCount            int             `gorm:"column:views_count;not null;default:0" json:"views_count"`
	NotificationThreshold int             `gorm:"column:notification_threshold;not null;default:0" json:"notification_threshold"`
	MessageSent           string          `gorm:"column:message_sent" json:"message_sent"`
	SMSStatus             enums.SMSStatus `gorm:"type:text;column:sms_status;not null" json:"sms_status"`
	SMSError              *string         `gorm:"column:sms_error" json:"sms_error"`
	SentAt                time.Time       `gorm:"column:sent_at;not null;index" json:"sent_at"`
}

// TableName keeps the engine's historical table name.
func (NotificationHistory) TableName() string {
	return "analytics_notifications_history"
}
