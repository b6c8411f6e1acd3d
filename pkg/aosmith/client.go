// Package aosmith is a client for the A. O. Smith cloud service controlling
// networked water heaters. It authenticates a user account, lists the
// registered devices, reads their status and energy usage history, and issues
// setpoint and operating mode changes.
package aosmith

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Client is the interface definition as used by this library, the interface
// is primarily to allow mocking tests.
type Client interface {
	// IsEverythingOkay probes the vendor status endpoint. It does not
	// require credentials.
	IsEverythingOkay(ctx context.Context) (bool, error)
	// GetDevices lists the compatible devices bound to the account. The
	// list is fetched fresh on every call.
	GetDevices(ctx context.Context) ([]Device, error)
	// GetDevice returns the device with the given junction id.
	GetDevice(ctx context.Context, junctionID string) (*Device, error)
	// UpdateSetpoint changes the temperature setpoint of a device. The
	// value must be between 95 and the maximum reported by the device.
	UpdateSetpoint(ctx context.Context, junctionID string, setpoint int) error
	// UpdateMode changes the operating mode of a device. opts may be nil
	// when neither a day selection nor a Hot Water+ level is supplied.
	UpdateMode(ctx context.Context, junctionID string, mode OperationMode, opts *ModeUpdateOptions) error
	// GetEnergyUseData returns the energy usage history of a device. A
	// device with no telemetry yet yields a zero-valued result.
	GetEnergyUseData(ctx context.Context, junctionID string) (*EnergyUseData, error)
	// GetAllDeviceInfo fetches the raw heavyweight payload for every
	// device plus its energy usage. A failing energy fetch for one device
	// is logged and skipped, never failing the whole call.
	GetAllDeviceInfo(ctx context.Context) (*AllDeviceInfo, error)
	// Close drops the session token and releases idle transport
	// connections. The client must not be used afterwards.
	Close() error
}

// client implements the Client interface. One client owns one logical
// session; the token is the only shared mutable state and is guarded by
// loginMutex.
type client struct {
	options    ClientOptions
	httpClient *http.Client

	token      string
	loginMutex sync.Mutex
}

// NewClient will create an A. O. Smith client with all the options specified
// in the provided ClientOptions. Login happens lazily on the first call that
// needs it.
func NewClient(options *ClientOptions) Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &client{
		options:    *options,
		httpClient: httpClient,
	}
}

func (c *client) IsEverythingOkay(ctx context.Context) (bool, error) {
	response, err := c.executeQuery(ctx, statusQuery, map[string]interface{}{}, false)
	if err != nil {
		return false, err
	}
	okay, ok := childMap(childMap(response, "data"), "status")["isEverythingOkay"].(bool)
	if !ok {
		return false, newUnknownError("failed to retrieve status", nil)
	}
	return okay, nil
}

func (c *client) GetDevices(ctx context.Context) ([]Device, error) {
	response, err := c.executeQuery(ctx, devicesQuery, map[string]interface{}{"forceUpdate": true}, true)
	if err != nil {
		return nil, err
	}

	rawDevices, ok := childMap(response, "data")["devices"].([]interface{})
	if !ok {
		return nil, newUnknownError("failed to retrieve devices", nil)
	}

	devices := make([]Device, 0, len(rawDevices))
	for _, rawDevice := range rawDevices {
		deviceMap, ok := rawDevice.(map[string]interface{})
		if !ok || !deviceIsCompatible(deviceMap) {
			continue
		}
		device, err := mapDevice(deviceMap)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *device)
	}
	return devices, nil
}

func (c *client) GetDevice(ctx context.Context, junctionID string) (*Device, error) {
	devices, err := c.GetDevices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].JunctionID == junctionID {
			return &devices[i], nil
		}
	}
	return nil, newUnknownError("device not found", nil)
}

func (c *client) UpdateSetpoint(ctx context.Context, junctionID string, setpoint int) error {
	if setpoint < 95 {
		return newInvalidParametersError("setpoint is below the minimum")
	}

	device, err := c.GetDevice(ctx, junctionID)
	if err != nil {
		return err
	}
	if setpoint > device.Status.TemperatureSetpointMaximum {
		return newInvalidParametersError("setpoint is above the maximum")
	}

	response, err := c.executeQuery(ctx, updateSetpointMutation, map[string]interface{}{
		"junctionId": junctionID,
		"value":      setpoint,
	}, true)
	if err != nil {
		return err
	}

	if confirmed, _ := childMap(response, "data")["updateSetpoint"].(bool); !confirmed {
		return newUnknownError("failed to update setpoint", nil)
	}
	return nil
}

func (c *client) UpdateMode(ctx context.Context, junctionID string, mode OperationMode, opts *ModeUpdateOptions) error {
	if opts == nil {
		opts = &ModeUpdateOptions{}
	}

	device, err := c.GetDevice(ctx, junctionID)
	if err != nil {
		return err
	}

	var desiredMode *SupportedOperationModeInfo
	for i := range device.SupportedModes {
		if device.SupportedModes[i].Mode == mode {
			desiredMode = &device.SupportedModes[i]
			break
		}
	}
	if desiredMode == nil {
		return newInvalidParametersError("mode not supported by this device")
	}

	days := opts.Days
	if desiredMode.HasDaySelection {
		if days == nil {
			defaultDays := 100
			days = &defaultDays
		} else if *days <= 0 || *days > 100 {
			return newInvalidParametersError("invalid days selection")
		}
	} else if days != nil {
		return newInvalidParametersError("days not supported for this operation mode")
	}

	modePayload := map[string]interface{}{"mode": desiredMode.OriginalName}
	if desiredMode.HasDaySelection {
		modePayload["days"] = *days
	}

	if device.SupportsHotWaterPlus {
		// Hot Water+ capable devices always send a level with the mode
		// change, even for modes the capability does not apply to.
		level := opts.HotWaterPlusLevel
		if level == nil {
			defaultLevel := 0
			if desiredMode.SupportsHotWaterPlus && device.Status.HotWaterPlusLevel != nil {
				defaultLevel = *device.Status.HotWaterPlusLevel
			}
			modePayload["hotWaterPlusLevel"] = defaultLevel
		} else {
			if *level < 0 || *level > 3 {
				return newInvalidParametersError("invalid Hot Water+ level")
			}
			if *level > 0 && !desiredMode.SupportsHotWaterPlus {
				return newInvalidParametersError("Hot Water+ not supported for this operation mode")
			}
			modePayload["hotWaterPlusLevel"] = *level
		}
	} else if opts.HotWaterPlusLevel != nil {
		return newInvalidParametersError("Hot Water+ not supported for this device")
	}

	response, err := c.executeQuery(ctx, updateModeMutation, map[string]interface{}{
		"junctionId": junctionID,
		"mode":       modePayload,
	}, true)
	if err != nil {
		return err
	}

	if confirmed, _ := childMap(response, "data")["updateMode"].(bool); !confirmed {
		return newUnknownError("failed to update mode", nil)
	}
	return nil
}

func (c *client) GetEnergyUseData(ctx context.Context, junctionID string) (*EnergyUseData, error) {
	basicInfo, err := c.getDeviceBasicInfo(ctx, junctionID)
	if err != nil {
		return nil, err
	}
	return c.getEnergyUseDataByDsn(ctx, basicInfo.Dsn, basicInfo.DeviceType)
}

// getDeviceBasicInfo resolves a junction id into the (dsn, device type) pair
// required by the energy usage query. The projection has its own query and
// is not derived from the full device payload.
func (c *client) getDeviceBasicInfo(ctx context.Context, junctionID string) (*DeviceBasicInfo, error) {
	response, err := c.executeQuery(ctx, devicesBasicInfoQuery, map[string]interface{}{"forceUpdate": true}, true)
	if err != nil {
		return nil, err
	}

	rawInfos, ok := childMap(response, "data")["devices"].([]interface{})
	if !ok {
		return nil, newUnknownError("failed to retrieve devices", nil)
	}

	for _, rawInfo := range rawInfos {
		infoMap, ok := rawInfo.(map[string]interface{})
		if !ok {
			continue
		}
		info, err := mapDeviceBasicInfo(infoMap)
		if err != nil {
			return nil, err
		}
		if info.JunctionID == junctionID {
			return info, nil
		}
	}
	return nil, newUnknownError("device not found", nil)
}

func (c *client) getEnergyUseDataByDsn(ctx context.Context, dsn string, deviceType string) (*EnergyUseData, error) {
	response, err := c.executeQuery(ctx, energyUseDataQuery, map[string]interface{}{
		"dsn":        dsn,
		"deviceType": deviceType,
	}, true)
	if err != nil {
		// A device with no telemetry yet is a normal condition, not an
		// error: normalize to an empty result.
		if errorHasKind(err, errorKindEnergyUsageUnavailable) {
			return &EnergyUseData{LifetimeKwh: 0, History: []EnergyUseHistoryEntry{}}, nil
		}
		return nil, err
	}

	dataMap, ok := childMap(response, "data")["getEnergyUseData"].(map[string]interface{})
	if !ok {
		return nil, newUnknownError("failed to retrieve energy use data", nil)
	}
	return mapEnergyUseData(dataMap)
}

func (c *client) GetAllDeviceInfo(ctx context.Context) (*AllDeviceInfo, error) {
	response, err := c.executeQuery(ctx, allDeviceDataQuery, map[string]interface{}{"forceUpdate": true}, true)
	if err != nil {
		return nil, err
	}

	rawDevices, _ := childMap(response, "data")["devices"].([]interface{})
	devices := make([]map[string]interface{}, 0, len(rawDevices))
	energyUseData := make(map[string]map[string]interface{})

	for _, rawDevice := range rawDevices {
		deviceMap, ok := rawDevice.(map[string]interface{})
		if !ok {
			continue
		}
		devices = append(devices, deviceMap)

		junctionID, hasJunctionID := deviceMap["junctionId"].(string)
		dsn, hasDsn := deviceMap["dsn"].(string)
		deviceType, hasDeviceType := deviceMap["deviceType"].(string)
		if !hasJunctionID || !hasDsn || !hasDeviceType {
			log.Error().Str("junctionId", junctionID).Msg("Device record is missing identity fields, skipping energy use data")
			continue
		}

		// One appliance with bad telemetry must not block visibility into
		// the rest of the fleet.
		energyResponse, err := c.executeQuery(ctx, energyUseDataQuery, map[string]interface{}{
			"dsn":        dsn,
			"deviceType": deviceType,
		}, true)
		if err != nil {
			log.Error().Err(err).Str("junctionId", junctionID).Msg("Failed to get energy use data")
			continue
		}
		payload, _ := childMap(energyResponse, "data")["getEnergyUseData"].(map[string]interface{})
		energyUseData[junctionID] = payload
	}

	return &AllDeviceInfo{
		Devices:       devices,
		EnergyUseData: energyUseData,
	}, nil
}

// Close drops the session and closes all idle connections of the transport.
func (c *client) Close() error {
	c.invalidateToken()
	c.httpClient.CloseIdleConnections()
	return nil
}
