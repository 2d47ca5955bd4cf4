package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/enums"
)

const recentViewersCap = 10

// EngagementMetrics counts how many views hit each engagement flag. Flags are
// independent; one view can increment all of them.
type EngagementMetrics struct {
	ScrolledToBottom  int `json:"scrolled_to_bottom"`
	ViewedDescription int `json:"viewed_description"`
	ViewedRepairs     int `json:"viewed_repairs"`
	ViewedPhotos      int `json:"viewed_photos"`
	ClickedMorePhotos int `json:"clicked_more_photos"`
	ClickedShare      int `json:"clicked_share"`
	ZoomedMap         int `json:"zoomed_map"`
	FullViewAchieved  int `json:"full_view_achieved"`
}

// DeviceCounts tallies views per known device bucket. Views with a missing or
// unrecognized device type land in no bucket.
type DeviceCounts struct {
	Desktop int `json:"desktop"`
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
}

// RecentViewer is one identified view kept for the per-property shortlist.
type RecentViewer struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Device    string    `json:"device"`
}

// PropertySummary is the derived engagement roll-up for one property.
type PropertySummary struct {
	PropertyID         string            `json:"property_id"`
	PropertyAddress    string            `json:"property_address"`
	TotalViews         int               `json:"total_views"`
	UniqueViewersCount int               `json:"unique_viewers_count"`
	AvgDuration        int               `json:"avg_duration"`
	AvgActiveTime      int               `json:"avg_active_time"`
	EngagementRate     int               `json:"engagement_rate"`
	EngagementMetrics  EngagementMetrics `json:"engagement_metrics"`
	Devices            DeviceCounts      `json:"devices"`
	UTMSources         map[string]int    `json:"utm_sources"`
	RecentViewers      []RecentViewer    `json:"recent_viewers"`
}

type accumulator struct {
	summary         *PropertySummary
	uniqueEmails    map[string]struct{}
	totalDuration   int
	totalActiveTime int
}

// Summarize folds page-view events into one summary per property. Input order
// is expected newest-first; the first event seen for a property supplies its
// address and recent viewers are collected in input order. The result is
// sorted by total views descending with ties kept in first-seen order.
//
// Pure over its input: no storage or network access happens here.
func Summarize(events []models.PropertyView) []PropertySummary {
	byProperty := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, event := range events {
		acc, ok := byProperty[event.PropertyID]
		if !ok {
			acc = &accumulator{
				summary: &PropertySummary{
					PropertyID:      event.PropertyID,
					PropertyAddress: event.PropertyAddress,
					UTMSources:      map[string]int{},
					RecentViewers:   []RecentViewer{},
				},
				uniqueEmails: map[string]struct{}{},
			}
			byProperty[event.PropertyID] = acc
			order = append(order, event.PropertyID)
		}
		acc.observe(event)
	}

	summaries := make([]PropertySummary, 0, len(order))
	for _, propertyID := range order {
		summaries = append(summaries, byProperty[propertyID].finalize())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalViews > summaries[j].TotalViews
	})

	return summaries
}

func (a *accumulator) observe(event models.PropertyView) {
	s := a.summary
	s.TotalViews++

	email := ""
	if event.UserEmail != nil {
		email = strings.TrimSpace(*event.UserEmail)
	}
	if email != "" {
		a.uniqueEmails[email] = struct{}{}
	}

	a.totalDuration += event.DurationSeconds
	a.totalActiveTime += event.ActiveSeconds

	if event.ScrolledToBottom {
		s.EngagementMetrics.ScrolledToBottom++
	}
	if event.ViewedDescription {
		s.EngagementMetrics.ViewedDescription++
	}
	if event.ViewedRepairs {
		s.EngagementMetrics.ViewedRepairs++
	}
	if event.ViewedPhotos {
		s.EngagementMetrics.ViewedPhotos++
	}
	if event.ClickedMorePhotos {
		s.EngagementMetrics.ClickedMorePhotos++
	}
	if event.ClickedShare {
		s.EngagementMetrics.ClickedShare++
	}
	if event.ZoomedMap {
		s.EngagementMetrics.ZoomedMap++
	}
	if event.FullViewAchieved {
		s.EngagementMetrics.FullViewAchieved++
	}

	switch enums.DeviceType(event.DeviceType) {
	case enums.DeviceTypeDesktop:
		s.Devices.Desktop++
	case enums.DeviceTypeMobile:
		s.Devices.Mobile++
	case enums.DeviceTypeTablet:
		s.Devices.Tablet++
	}

	if event.UTMSource != nil && *event.UTMSource != "" {
		s.UTMSources[*event.UTMSource]++
	}

	if email != "" && len(s.RecentViewers) < recentViewersCap {
		s.RecentViewers = append(s.RecentViewers, RecentViewer{
			Email:     email,
			Name:      viewerName(event),
			CreatedAt: event.CreatedAt,
			Device:    event.DeviceType,
		})
	}
}

func (a *accumulator) finalize() PropertySummary {
	s := *a.summary
	s.UniqueViewersCount = len(a.uniqueEmails)
	if s.TotalViews > 0 {
		s.AvgDuration = roundDiv(a.totalDuration, s.TotalViews)
		s.AvgActiveTime = roundDiv(a.totalActiveTime, s.TotalViews)
		s.EngagementRate = int(math.Round(float64(s.EngagementMetrics.FullViewAchieved) / float64(s.TotalViews) * 100))
	}
	return s
}

func viewerName(event models.PropertyView) string {
	first, last := "", ""
	if event.UserFirstName != nil {
		first = *event.UserFirstName
	}
	if event.UserLastName != nil {
		last = *event.UserLastName
	}
	return strings.TrimSpace(first + " " + last)
}

func roundDiv(total, count int) int {
	return int(math.Round(float64(total) / float64(count)))
}
