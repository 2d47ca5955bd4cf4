package models

import (
	"time"

	dbtypes "github.com/deelmap/admin-backend/pkg/db/types"
	"github.com/google/uuid"
)

// SettingScopeGlobal is the fixed key of the singleton policy row.
const SettingScopeGlobal = "global"

// Setting is the single notification-policy row. The unique scope column
// pins it to one row so saves can upsert on conflict instead of racing a
// read-then-insert sequence.
type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Scope string    `gorm:"type:text;not null;default:global;uniqueIndex" json:"-"`

	NotificationEnabled   bool   `gorm:"column:analytics_notification_enabled;not null;default:true" json:"analytics_notification_enabled"`
	NotificationThreshold int    `gorm:"column:analytics_notification_threshold;not null;default:2" json:"analytics_notification_threshold"`
	MessageTemplate       string `gorm:"column:analytics_message_template;type:text" json:"analytics_message_template"`
	FromPhone             string `gorm:"column:analytics_notification_from_phone" json:"analytics_notification_from_phone"`

	CooldownEnabled bool `gorm:"column:analytics_cooldown_enabled;not null;default:false" json:"analytics_cooldown_enabled"`
	CooldownHours   int  `gorm:"column:analytics_cooldown_hours;not null;default:24" json:"analytics_cooldown_hours"`

	QuietHoursEnabled  bool   `gorm:"column:analytics_quiet_hours_enabled;not null;default:false" json:"analytics_quiet_hours_enabled"`
	QuietHoursStart    int    `gorm:"column:analytics_quiet_hours_start;not null;default:22" json:"analytics_quiet_hours_start"`
	QuietHoursEnd      int    `gorm:"column:analytics_quiet_hours_end;not null;default:8" json:"analytics_quiet_hours_end"`
	QuietHoursTimezone string `gorm:"column:analytics_quiet_hours_timezone;default:America/New_York" json:"analytics_quiet_hours_timezone"`
	QueueOutsideHours  bool   `gorm:"column:analytics_queue_outside_hours;not null;default:true" json:"analytics_queue_outside_hours"`

	ProgressiveMilestones dbtypes.Milestones `gorm:"column:analytics_progressive_milestones;type:jsonb" json:"analytics_progressive_milestones"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// AdminSetting holds per-admin knobs, currently the auto-approve toggle.
type AdminSetting struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdminID            uuid.UUID `gorm:"type:uuid;column:admin_id;not null;uniqueIndex" json:"admin_id"`
	AutoApproveSellers bool      `gorm:"column:auto_approve_sellers;not null;default:false" json:"auto_approve_sellers"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
