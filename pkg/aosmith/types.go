package aosmith

// DeviceType identifies the water heater models this library knows how to
// control. The constant values are stable identifiers for consumers; the wire
// discriminant is the GraphQL `__typename` and is translated by the mapper.
type DeviceType string

const (
	DeviceTypeNextGenHeatPump DeviceType = "next_gen_heat_pump"
	DeviceTypeRE3Connected    DeviceType = "re3_connected"
	DeviceTypeRE3Premium      DeviceType = "re3_premium"
)

type OperationMode string

const (
	OperationModeElectric OperationMode = "electric"
	OperationModeGuest    OperationMode = "guest"
	OperationModeHeatPump OperationMode = "heat_pump"
	OperationModeHybrid   OperationMode = "hybrid"
	OperationModeVacation OperationMode = "vacation"
)

// SupportedOperationModeInfo describes one operation mode accepted by a
// device. OriginalName keeps the exact server spelling because a single
// OperationMode can correspond to several server strings (both "ELECTRIC" and
// "STANDARD" map to OperationModeElectric) and mutations must echo the
// spelling the device advertised.
type SupportedOperationModeInfo struct {
	Mode                 OperationMode
	OriginalName         string
	HasDaySelection      bool
	SupportsHotWaterPlus bool
}

// DeviceStatus is the live state of a device at query time. HotWaterStatus is
// normalized to a 0-100 "hot water remaining" scale; HotWaterPlusLevel is
// 0-3. Both are nil when the device does not report them.
type DeviceStatus struct {
	FirmwareVersion             string
	IsOnline                    bool
	CurrentMode                 OperationMode
	ModeChangePending           bool
	TemperatureSetpoint         int
	TemperatureSetpointPending  bool
	TemperatureSetpointPrevious int
	TemperatureSetpointMaximum  int
	HotWaterStatus              *int
	HotWaterPlusLevel           *int
}

// Device is an immutable snapshot of one registered appliance. JunctionID is
// the stable logical id used for all control operations; Dsn is the serial
// used by the telemetry queries. Two listings may return distinct Device
// values for the same physical appliance.
type Device struct {
	Brand                string
	Model                string
	DeviceType           DeviceType
	Dsn                  string
	JunctionID           string
	Name                 string
	Serial               string
	InstallLocation      string
	SupportedModes       []SupportedOperationModeInfo
	SupportsHotWaterPlus bool
	Status               DeviceStatus
}

// DeviceBasicInfo is the slim projection used to resolve a junction id into
// the (dsn, device type) pair required by the energy usage query. It is
// fetched by its own query and is not derived from Device.
type DeviceBasicInfo struct {
	Brand      string
	Model      string
	DeviceType string
	Dsn        string
	JunctionID string
	Name       string
	Serial     string
}

type EnergyUseHistoryEntry struct {
	Date         string
	EnergyUseKwh float64
}

// EnergyUseData holds the lifetime consumption plus the ordered per-day
// samples. A device with no telemetry yet is represented as LifetimeKwh 0
// with an empty history, never as an error.
type EnergyUseData struct {
	LifetimeKwh float64
	History     []EnergyUseHistoryEntry
}

// AllDeviceInfo is the result of the bulk fetch: the raw heavyweight device
// payloads exactly as the server returned them, plus the energy use payload
// keyed by junction id for every device whose telemetry query succeeded.
type AllDeviceInfo struct {
	Devices       []map[string]interface{}
	EnergyUseData map[string]map[string]interface{}
}

// ModeUpdateOptions carries the optional arguments of UpdateMode. Nil fields
// mean "not supplied" and trigger the documented defaulting rules.
type ModeUpdateOptions struct {
	// Days applies only to modes with day selection (e.g. vacation);
	// valid range is 1-100, defaulting to 100 when omitted.
	Days *int
	// HotWaterPlusLevel is the 0-3 Hot Water+ intensity. Only accepted for
	// devices that support the capability.
	HotWaterPlusLevel *int
}
