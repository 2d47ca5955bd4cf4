package settings

import dbtypes "github.com/deelmap/admin-backend/pkg/db/types"

// PolicyUpdate carries a partial policy save. Nil fields keep their stored
// (or default) values.
type PolicyUpdate struct {
	NotificationEnabled   *bool               `json:"analytics_notification_enabled"`
	NotificationThreshold *int                `json:"analytics_notification_threshold"`
	MessageTemplate       *string             `json:"analytics_message_template"`
	FromPhone             *string             `json:"analytics_notification_from_phone"`
	CooldownEnabled       *bool               `json:"analytics_cooldown_enabled"`
	CooldownHours         *int                `json:"analytics_cooldown_hours"`
	QuietHoursEnabled     *bool               `json:"analytics_quiet_hours_enabled"`
	QuietHoursStart       *int                `json:"analytics_quiet_hours_start"`
	QuietHoursEnd         *int                `json:"analytics_quiet_hours_end"`
	QuietHoursTimezone    *string             `json:"analytics_quiet_hours_timezone"`
	QueueOutsideHours     *bool               `json:"analytics_queue_outside_hours"`
	ProgressiveMilestones *dbtypes.Milestones `json:"analytics_progressive_milestones"`
}

// PreviewRequest asks for a rendered copy of a template with sample values.
type PreviewRequest struct {
	Template   string `json:"template" validate:"required"`
	SellerName string `json:"seller_name"`
	NoOfViews  int    `json:"no_of_views"`
	Address    string `json:"address"`
}

// PreviewResponse is the rendered message plus its SMS segment footprint.
type PreviewResponse struct {
	Rendered  string `json:"rendered"`
	Length    int    `json:"length"`
	Segments  int    `json:"segments"`
	MagicLink string `json:"magic_link"`
}

// AutoApproveUpdate toggles auto-approval of seller applications for the
// calling admin.
type AutoApproveUpdate struct {
	Enabled bool `json:"enabled"`
}
