package models

// DeviceID identifies a controllable appliance.
type DeviceID string

const (
	DeviceFan    DeviceID = "fan"
	DeviceLights DeviceID = "lights"
	DeviceAC     DeviceID = "ac"
)

// DeviceStatus is the switch position of a device.
type DeviceStatus string

const (
	StatusOn  DeviceStatus = "on"
	StatusOff DeviceStatus = "off"
)

// Valid reports whether s is a known status.
func (s DeviceStatus) Valid() bool {
	return s == StatusOn || s == StatusOff
}

// Device is a switchable appliance shown on the dashboard.
type Device struct {
	ID     DeviceID     `json:"id"`
	Name   string       `json:"name"`
	Status DeviceStatus `json:"status"` // on | off
}

// KnownDevice reports whether id is one of the supported appliances.
func KnownDevice(id DeviceID) bool {
	switch id {
	case DeviceFan, DeviceLights, DeviceAC:
		return true
	}
	return false
}

// DefaultDevices is the seed set used before the first successful poll.
func DefaultDevices() []Device {
	return []Device{
		{ID: DeviceAC, Name: "Air Conditioner", Status: StatusOff},
		{ID: DeviceFan, Name: "Fan", Status: StatusOff},
		{ID: DeviceLights, Name: "Lights", Status: StatusOff},
	}
}
