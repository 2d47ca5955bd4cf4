package settings

import (
	"github.com/deelmap/admin-backend/pkg/db/models"
	dbtypes "github.com/deelmap/admin-backend/pkg/db/types"
)

const defaultMessageTemplate = "Hey {seller_name}! Your property at {address} got {no_of_views} new views. Engage with them right now: {magic_link}"

// DefaultPolicy is what callers see before the first save persists a row.
func DefaultPolicy() models.Setting {
	return models.Setting{
		Scope:                 models.SettingScopeGlobal,
		NotificationEnabled:   true,
		NotificationThreshold: 2,
		MessageTemplate:       defaultMessageTemplate,
		FromPhone:             "(332) 333-3839",
		CooldownEnabled:       false,
		CooldownHours:         24,
		QuietHoursEnabled:     false,
		QuietHoursStart:       22,
		QuietHoursEnd:         8,
		QuietHoursTimezone:    "America/New_York",
		QueueOutsideHours:     true,
		ProgressiveMilestones: dbtypes.Milestones{
			{Threshold: 2, Enabled: true, Message: defaultMessageTemplate},
			{Threshold: 5, Enabled: true, Message: "Great news {seller_name}! Your property at {address} now has {no_of_views} views. Keep the momentum going: {magic_link}"},
			{Threshold: 10, Enabled: true, Message: "Hot property! {address} has {no_of_views} views! Check them out: {magic_link}"},
		},
	}
}
