package aosmith

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// The mapper is the only place raw server payloads are allowed to cross into
// the domain model. Every wire shape has an exact required-key set and a
// closed enum table; anything missing or unrecognized is a fatal mapping
// error, never a guessed default. The appliance API evolves, and silently
// mis-mapping a new device type or mode would produce incorrect control
// commands.

// compatibleTypenames is the set of wire discriminants this library supports
// controlling. Records with any other discriminant are excluded from
// listings without error: an account can contain appliance types outside the
// scope of this library.
var compatibleTypenames = map[string]DeviceType{
	"NextGenHeatPump": DeviceTypeNextGenHeatPump,
	"RE3Connected":    DeviceTypeRE3Connected,
	"RE3Premium":      DeviceTypeRE3Premium,
}

var deviceRequiredKeys = []string{"brand", "model", "dsn", "junctionId", "name", "serial", "install", "data"}

var deviceRequiredDataKeys = []string{
	"temperatureSetpoint", "temperatureSetpointPending", "temperatureSetpointPrevious",
	"temperatureSetpointMaximum", "modes", "isOnline", "firmwareVersion",
	"hotWaterStatus", "mode", "modePending",
}

var deviceBasicInfoRequiredKeys = []string{"brand", "model", "deviceType", "dsn", "junctionId", "name", "serial"}

// Wire records decoded with mapstructure once the key-presence validation has
// passed. Weakly typed input mirrors how the server mixes JSON number
// representations.

type deviceRecord struct {
	Brand      string           `mapstructure:"brand"`
	Model      string           `mapstructure:"model"`
	Dsn        string           `mapstructure:"dsn"`
	JunctionID string           `mapstructure:"junctionId"`
	Name       string           `mapstructure:"name"`
	Serial     string           `mapstructure:"serial"`
	Install    installRecord    `mapstructure:"install"`
	Data       deviceDataRecord `mapstructure:"data"`
}

type installRecord struct {
	Location string `mapstructure:"location"`
}

type deviceDataRecord struct {
	Typename                    string                   `mapstructure:"__typename"`
	TemperatureSetpoint         int                      `mapstructure:"temperatureSetpoint"`
	TemperatureSetpointPending  bool                     `mapstructure:"temperatureSetpointPending"`
	TemperatureSetpointPrevious int                      `mapstructure:"temperatureSetpointPrevious"`
	TemperatureSetpointMaximum  int                      `mapstructure:"temperatureSetpointMaximum"`
	Modes                       []map[string]interface{} `mapstructure:"modes"`
	IsOnline                    bool                     `mapstructure:"isOnline"`
	FirmwareVersion             string                   `mapstructure:"firmwareVersion"`
	HotWaterStatus              interface{}              `mapstructure:"hotWaterStatus"`
	Mode                        string                   `mapstructure:"mode"`
	ModePending                 bool                     `mapstructure:"modePending"`
	HotWaterPlusLevel           string                   `mapstructure:"hotWaterPlusLevel"`
}

type deviceBasicInfoRecord struct {
	Brand      string `mapstructure:"brand"`
	Model      string `mapstructure:"model"`
	DeviceType string `mapstructure:"deviceType"`
	Dsn        string `mapstructure:"dsn"`
	JunctionID string `mapstructure:"junctionId"`
	Name       string `mapstructure:"name"`
	Serial     string `mapstructure:"serial"`
}

type energyUseHistoryEntryRecord struct {
	Date string  `mapstructure:"date"`
	Kwh  float64 `mapstructure:"kwh"`
}

// decodeRecord maps a raw response value onto the given wire record type.
func decodeRecord[T any](input interface{}) (*T, error) {
	record := new(T)
	config := &mapstructure.DecoderConfig{
		Result:           record,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, newUnknownError("error building decoder", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, newUnknownError("error decoding response", err)
	}
	return record, nil
}

// requireKeys checks the exact key set a wire shape must carry. Presence is
// what matters; a present-but-null value is legal where the shape allows it.
func requireKeys(m map[string]interface{}, message string, keys []string) error {
	for _, key := range keys {
		if _, ok := m[key]; !ok {
			return newUnknownError(message, nil)
		}
	}
	return nil
}

// childMap returns the nested object under key, or an empty map when the key
// is absent or not an object.
func childMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	if child, ok := m[key].(map[string]interface{}); ok {
		return child
	}
	return map[string]interface{}{}
}

func deviceIsCompatible(deviceMap map[string]interface{}) bool {
	typename, ok := childMap(deviceMap, "data")["__typename"].(string)
	if !ok {
		return false
	}
	_, supported := compatibleTypenames[typename]
	return supported
}

func deviceTypeSupportsHotWaterPlus(deviceType DeviceType) bool {
	return deviceType == DeviceTypeRE3Premium
}

func mapModeString(modeStr string) (OperationMode, error) {
	switch modeStr {
	case "HYBRID":
		return OperationModeHybrid, nil
	case "HEAT_PUMP":
		return OperationModeHeatPump, nil
	case "ELECTRIC", "STANDARD":
		return OperationModeElectric, nil
	case "VACATION":
		return OperationModeVacation, nil
	case "GUEST":
		return OperationModeGuest, nil
	default:
		return "", newUnknownError("unknown mode", nil)
	}
}

// mapHotWaterPlusLevel translates the wire level to the 0-3 scale. An empty
// or unrecognized string means the device does not report the capability.
func mapHotWaterPlusLevel(levelStr string) *int {
	var level int
	switch levelStr {
	case "OFF":
		level = 0
	case "ONE":
		level = 1
	case "TWO":
		level = 2
	case "THREE":
		level = 3
	default:
		return nil
	}
	return &level
}

func mapSupportedMode(modeMap map[string]interface{}) (*SupportedOperationModeInfo, error) {
	modeStr, ok := modeMap["mode"].(string)
	if !ok {
		return nil, newUnknownError("failed to determine mode", nil)
	}

	hasDaySelection := false
	supportsHotWaterPlus := false

	// The "controls" tag is mutually exclusive: a mode either takes a day
	// selection or participates in Hot Water+, never both.
	if controls, present := modeMap["controls"]; present && controls != nil {
		switch controls {
		case "SELECT_DAYS":
			hasDaySelection = true
		case "HOT_WATER_PLUS":
			supportsHotWaterPlus = true
		default:
			return nil, newUnknownError("unknown controls", nil)
		}
	}

	mode, err := mapModeString(modeStr)
	if err != nil {
		return nil, err
	}

	return &SupportedOperationModeInfo{
		Mode:                 mode,
		OriginalName:         modeStr,
		HasDaySelection:      hasDaySelection,
		SupportsHotWaterPlus: supportsHotWaterPlus,
	}, nil
}

// parseHotWaterStatus normalizes the two wire shapes of the hot water
// reading. A string sentinel maps to fixed points; a numeric reading counts
// hot water used, so it is inverted to represent hot water remaining. The
// two scales are intentionally not reconciled with each other.
func parseHotWaterStatus(raw interface{}) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	var status int
	switch value := raw.(type) {
	case string:
		switch strings.ToUpper(value) {
		case "LOW":
			status = 0
		case "MEDIUM":
			status = 50
		case "HIGH":
			status = 100
		default:
			return nil, newUnknownError("unknown hot water status", nil)
		}
	case float64:
		status = 100 - int(value)
	case int:
		status = 100 - value
	default:
		return nil, newUnknownError("unknown hot water status", nil)
	}
	return &status, nil
}

func mapDevice(deviceMap map[string]interface{}) (*Device, error) {
	typename, ok := childMap(deviceMap, "data")["__typename"].(string)
	if !ok {
		return nil, newUnknownError("failed to determine device type", nil)
	}
	deviceType, supported := compatibleTypenames[typename]
	if !supported {
		return nil, newUnknownError("unknown device type", nil)
	}

	if err := requireKeys(deviceMap, "missing required keys", deviceRequiredKeys); err != nil {
		return nil, err
	}
	if err := requireKeys(childMap(deviceMap, "data"), "missing required data keys", deviceRequiredDataKeys); err != nil {
		return nil, err
	}

	record, err := decodeRecord[deviceRecord](deviceMap)
	if err != nil {
		return nil, err
	}

	supportedModes := make([]SupportedOperationModeInfo, 0, len(record.Data.Modes))
	for _, modeMap := range record.Data.Modes {
		mode, err := mapSupportedMode(modeMap)
		if err != nil {
			return nil, err
		}
		supportedModes = append(supportedModes, *mode)
	}

	currentMode, err := mapModeString(record.Data.Mode)
	if err != nil {
		return nil, err
	}

	hotWaterStatus, err := parseHotWaterStatus(record.Data.HotWaterStatus)
	if err != nil {
		return nil, err
	}

	return &Device{
		Brand:                record.Brand,
		Model:                record.Model,
		DeviceType:           deviceType,
		Dsn:                  record.Dsn,
		JunctionID:           record.JunctionID,
		Name:                 record.Name,
		Serial:               record.Serial,
		InstallLocation:      record.Install.Location,
		SupportedModes:       supportedModes,
		SupportsHotWaterPlus: deviceTypeSupportsHotWaterPlus(deviceType),
		Status: DeviceStatus{
			FirmwareVersion:             record.Data.FirmwareVersion,
			IsOnline:                    record.Data.IsOnline,
			CurrentMode:                 currentMode,
			ModeChangePending:           record.Data.ModePending,
			TemperatureSetpoint:         record.Data.TemperatureSetpoint,
			TemperatureSetpointPending:  record.Data.TemperatureSetpointPending,
			TemperatureSetpointPrevious: record.Data.TemperatureSetpointPrevious,
			TemperatureSetpointMaximum:  record.Data.TemperatureSetpointMaximum,
			HotWaterStatus:              hotWaterStatus,
			HotWaterPlusLevel:           mapHotWaterPlusLevel(record.Data.HotWaterPlusLevel),
		},
	}, nil
}

func mapDeviceBasicInfo(infoMap map[string]interface{}) (*DeviceBasicInfo, error) {
	if err := requireKeys(infoMap, "missing required keys", deviceBasicInfoRequiredKeys); err != nil {
		return nil, err
	}
	record, err := decodeRecord[deviceBasicInfoRecord](infoMap)
	if err != nil {
		return nil, err
	}
	return &DeviceBasicInfo{
		Brand:      record.Brand,
		Model:      record.Model,
		DeviceType: record.DeviceType,
		Dsn:        record.Dsn,
		JunctionID: record.JunctionID,
		Name:       record.Name,
		Serial:     record.Serial,
	}, nil
}

func mapEnergyUseHistoryEntry(entryMap map[string]interface{}) (*EnergyUseHistoryEntry, error) {
	if err := requireKeys(entryMap, "missing required keys", []string{"date", "kwh"}); err != nil {
		return nil, err
	}
	record, err := decodeRecord[energyUseHistoryEntryRecord](entryMap)
	if err != nil {
		return nil, err
	}
	return &EnergyUseHistoryEntry{
		Date:         record.Date,
		EnergyUseKwh: record.Kwh,
	}, nil
}

func mapEnergyUseData(dataMap map[string]interface{}) (*EnergyUseData, error) {
	if err := requireKeys(dataMap, "missing required keys", []string{"graphData", "lifetimeKwh"}); err != nil {
		return nil, err
	}

	rawEntries, ok := dataMap["graphData"].([]interface{})
	if !ok {
		return nil, newUnknownError("missing required keys", nil)
	}
	history := make([]EnergyUseHistoryEntry, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		entryMap, ok := rawEntry.(map[string]interface{})
		if !ok {
			return nil, newUnknownError(fmt.Sprintf("unexpected history entry of type %T", rawEntry), nil)
		}
		entry, err := mapEnergyUseHistoryEntry(entryMap)
		if err != nil {
			return nil, err
		}
		history = append(history, *entry)
	}

	lifetime, err := decodeRecord[struct {
		LifetimeKwh float64 `mapstructure:"lifetimeKwh"`
	}](dataMap)
	if err != nil {
		return nil, err
	}

	return &EnergyUseData{
		LifetimeKwh: lifetime.LifetimeKwh,
		History:     history,
	}, nil
}
