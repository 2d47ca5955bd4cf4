package enums

import "fmt"

// ListingStatus tracks the publication state of a property listing.
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusPublished ListingStatus = "published"
	ListingStatusArchived  ListingStatus = "archived"
)

var validListingStatuses = []ListingStatus{
	ListingStatusDraft,
	ListingStatusPublished,
	ListingStatusArchived,
}

// IsValid checks whether the given status matches the canonical enum.
func (l ListingStatus) IsValid() bool {
	for _, candidate := range validListingStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingStatus converts raw strings into ListingStatus.
func ParseListingStatus(value string) (ListingStatus, error) {
	for _, candidate := range validListingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing status %q", value)
}

// PropertyStatus tracks the sale state of a property.
type PropertyStatus string

const (
	PropertyStatusAvailable     PropertyStatus = "available"
	PropertyStatusUnderContract PropertyStatus = "under_contract"
	PropertyStatusSold          PropertyStatus = "sold"
)

var validPropertyStatuses = []PropertyStatus{
	PropertyStatusAvailable,
	PropertyStatusUnderContract,
	PropertyStatusSold,
}

// IsValid checks whether the given status matches the canonical enum.
func (p PropertyStatus) IsValid() bool {
	for _, candidate := range validPropertyStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePropertyStatus converts raw strings into PropertyStatus.
func ParsePropertyStatus(value string) (PropertyStatus, error) {
	for _, candidate := range validPropertyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property status %q", value)
}
