package enums

// DeviceType classifies the device a page view came from.
type DeviceType string

const (
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeTablet  DeviceType = "tablet"
)

var validDeviceTypes = []DeviceType{
	DeviceTypeDesktop,
	DeviceTypeMobile,
	DeviceTypeTablet,
}

// IsValid checks whether the given type matches the canonical enum. Events may
// carry other values (or none); those simply fall outside every device bucket.
func (d DeviceType) IsValid() bool {
	for _, candidate := range validDeviceTypes {
		if candidate == d {
			return true
		}
	}
	return false
}
