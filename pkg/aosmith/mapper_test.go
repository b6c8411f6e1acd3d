package aosmith

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonMap(t *testing.T, document string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(document), &m))
	return m
}

const premiumDeviceJSON = `{
	"brand": "aosmith",
	"model": "RE3-PREM",
	"deviceType": "RE3_PREMIUM",
	"dsn": "dsn-2",
	"junctionId": "jct-2",
	"name": "Garage Heater",
	"serial": "S2",
	"install": {"location": "Garage"},
	"data": {
		"__typename": "RE3Premium",
		"temperatureSetpoint": 125,
		"temperatureSetpointPending": false,
		"temperatureSetpointPrevious": 120,
		"temperatureSetpointMaximum": 140,
		"modes": [
			{"mode": "STANDARD", "controls": "HOT_WATER_PLUS"},
			{"mode": "GUEST", "controls": null},
			{"mode": "VACATION", "controls": "SELECT_DAYS"}
		],
		"isOnline": true,
		"firmwareVersion": "1.2.3",
		"hotWaterStatus": "HIGH",
		"mode": "STANDARD",
		"modePending": false,
		"hotWaterPlusLevel": "TWO"
	}
}`

const heatPumpDeviceJSON = `{
	"brand": "aosmith",
	"model": "HPTS-50",
	"deviceType": "NEXT_GEN_HEAT_PUMP",
	"dsn": "dsn-1",
	"junctionId": "jct-1",
	"name": "Water Heater",
	"serial": "S1",
	"install": {"location": "Basement"},
	"data": {
		"__typename": "NextGenHeatPump",
		"temperatureSetpoint": 120,
		"temperatureSetpointPending": true,
		"temperatureSetpointPrevious": 115,
		"temperatureSetpointMaximum": 130,
		"modes": [
			{"mode": "HYBRID", "controls": null},
			{"mode": "ELECTRIC", "controls": null},
			{"mode": "VACATION", "controls": "SELECT_DAYS"}
		],
		"isOnline": true,
		"firmwareVersion": "2.14",
		"hotWaterStatus": 25,
		"mode": "HEAT_PUMP",
		"modePending": false
	}
}`

func TestMapDevicePremium(t *testing.T) {
	device, err := mapDevice(jsonMap(t, premiumDeviceJSON))
	require.NoError(t, err)

	assert.Equal(t, DeviceTypeRE3Premium, device.DeviceType)
	assert.Equal(t, "dsn-2", device.Dsn)
	assert.Equal(t, "jct-2", device.JunctionID)
	assert.Equal(t, "Garage", device.InstallLocation)
	assert.True(t, device.SupportsHotWaterPlus)

	require.Len(t, device.SupportedModes, 3)
	standard := device.SupportedModes[0]
	assert.Equal(t, OperationModeElectric, standard.Mode, "STANDARD maps onto the electric mode")
	assert.Equal(t, "STANDARD", standard.OriginalName)
	assert.True(t, standard.SupportsHotWaterPlus)
	assert.False(t, standard.HasDaySelection)
	vacation := device.SupportedModes[2]
	assert.True(t, vacation.HasDaySelection)
	assert.False(t, vacation.SupportsHotWaterPlus)

	assert.Equal(t, OperationModeElectric, device.Status.CurrentMode)
	assert.Equal(t, 125, device.Status.TemperatureSetpoint)
	assert.Equal(t, 140, device.Status.TemperatureSetpointMaximum)
	require.NotNil(t, device.Status.HotWaterStatus)
	assert.Equal(t, 100, *device.Status.HotWaterStatus, "HIGH maps to the fixed bucket 100")
	require.NotNil(t, device.Status.HotWaterPlusLevel)
	assert.Equal(t, 2, *device.Status.HotWaterPlusLevel)
}

func TestMapDeviceHeatPump(t *testing.T) {
	device, err := mapDevice(jsonMap(t, heatPumpDeviceJSON))
	require.NoError(t, err)

	assert.Equal(t, DeviceTypeNextGenHeatPump, device.DeviceType)
	assert.False(t, device.SupportsHotWaterPlus)
	assert.Equal(t, OperationModeHeatPump, device.Status.CurrentMode)
	assert.True(t, device.Status.TemperatureSetpointPending)
	require.NotNil(t, device.Status.HotWaterStatus)
	assert.Equal(t, 75, *device.Status.HotWaterStatus, "numeric readings are inverted")
	assert.Nil(t, device.Status.HotWaterPlusLevel)
}

func TestMapDeviceMissingRequiredKey(t *testing.T) {
	deviceMap := jsonMap(t, heatPumpDeviceJSON)
	delete(deviceMap, "serial")
	_, err := mapDevice(deviceMap)
	require.Error(t, err)
	assert.EqualError(t, err, "missing required keys")
}

func TestMapDeviceMissingRequiredDataKey(t *testing.T) {
	deviceMap := jsonMap(t, heatPumpDeviceJSON)
	delete(deviceMap["data"].(map[string]interface{}), "temperatureSetpoint")
	_, err := mapDevice(deviceMap)
	require.Error(t, err)
	assert.EqualError(t, err, "missing required data keys")
}

func TestMapDeviceUnknownType(t *testing.T) {
	deviceMap := jsonMap(t, heatPumpDeviceJSON)
	deviceMap["data"].(map[string]interface{})["__typename"] = "CommercialGas"
	_, err := mapDevice(deviceMap)
	require.Error(t, err)
	assert.EqualError(t, err, "unknown device type")
}

func TestMapDeviceUnknownModeString(t *testing.T) {
	deviceMap := jsonMap(t, heatPumpDeviceJSON)
	deviceMap["data"].(map[string]interface{})["mode"] = "TURBO"
	_, err := mapDevice(deviceMap)
	require.Error(t, err)
	assert.EqualError(t, err, "unknown mode")
}

func TestMapSupportedMode(t *testing.T) {
	mode, err := mapSupportedMode(map[string]interface{}{"mode": "VACATION", "controls": "SELECT_DAYS"})
	require.NoError(t, err)
	assert.Equal(t, OperationModeVacation, mode.Mode)
	assert.True(t, mode.HasDaySelection)
	assert.False(t, mode.SupportsHotWaterPlus)

	mode, err = mapSupportedMode(map[string]interface{}{"mode": "ELECTRIC", "controls": "HOT_WATER_PLUS"})
	require.NoError(t, err)
	assert.False(t, mode.HasDaySelection)
	assert.True(t, mode.SupportsHotWaterPlus)

	mode, err = mapSupportedMode(map[string]interface{}{"mode": "HEAT_PUMP", "controls": nil})
	require.NoError(t, err)
	assert.False(t, mode.HasDaySelection)
	assert.False(t, mode.SupportsHotWaterPlus)

	_, err = mapSupportedMode(map[string]interface{}{"mode": "HEAT_PUMP", "controls": "SOMETHING_ELSE"})
	assert.EqualError(t, err, "unknown controls")

	_, err = mapSupportedMode(map[string]interface{}{"controls": "SELECT_DAYS"})
	assert.EqualError(t, err, "failed to determine mode")
}

func TestParseHotWaterStatus(t *testing.T) {
	status, err := parseHotWaterStatus(nil)
	require.NoError(t, err)
	assert.Nil(t, status)

	for sentinel, expected := range map[string]int{"LOW": 0, "Medium": 50, "high": 100} {
		status, err = parseHotWaterStatus(sentinel)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, expected, *status)
	}

	status, err = parseHotWaterStatus(float64(30))
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 70, *status, "numeric readings count hot water used and are inverted")

	_, err = parseHotWaterStatus("FULL")
	assert.EqualError(t, err, "unknown hot water status")

	_, err = parseHotWaterStatus(true)
	assert.EqualError(t, err, "unknown hot water status")
}

func TestMapHotWaterPlusLevel(t *testing.T) {
	for wire, expected := range map[string]int{"OFF": 0, "ONE": 1, "TWO": 2, "THREE": 3} {
		level := mapHotWaterPlusLevel(wire)
		require.NotNil(t, level)
		assert.Equal(t, expected, *level)
	}
	assert.Nil(t, mapHotWaterPlusLevel(""))
	assert.Nil(t, mapHotWaterPlusLevel("FOUR"))
}

func TestDeviceIsCompatible(t *testing.T) {
	assert.True(t, deviceIsCompatible(jsonMap(t, premiumDeviceJSON)))
	assert.True(t, deviceIsCompatible(jsonMap(t, heatPumpDeviceJSON)))

	gas := jsonMap(t, heatPumpDeviceJSON)
	gas["data"].(map[string]interface{})["__typename"] = "CommercialGas"
	assert.False(t, deviceIsCompatible(gas))

	assert.False(t, deviceIsCompatible(map[string]interface{}{"data": map[string]interface{}{}}))
	assert.False(t, deviceIsCompatible(map[string]interface{}{}))
}

func TestMapDeviceBasicInfo(t *testing.T) {
	infoMap := jsonMap(t, `{
		"brand": "aosmith",
		"model": "HPTS-50",
		"deviceType": "NEXT_GEN_HEAT_PUMP",
		"dsn": "dsn-1",
		"junctionId": "jct-1",
		"name": "Water Heater",
		"serial": "S1"
	}`)

	info, err := mapDeviceBasicInfo(infoMap)
	require.NoError(t, err)
	assert.Equal(t, "dsn-1", info.Dsn)
	assert.Equal(t, "NEXT_GEN_HEAT_PUMP", info.DeviceType)
	assert.Equal(t, "jct-1", info.JunctionID)

	delete(infoMap, "deviceType")
	_, err = mapDeviceBasicInfo(infoMap)
	assert.EqualError(t, err, "missing required keys")
}

func TestMapEnergyUseData(t *testing.T) {
	dataMap := jsonMap(t, `{
		"average": 2.5,
		"graphData": [
			{"date": "2024-01-01", "kwh": 3.2},
			{"date": "2024-01-02", "kwh": 2.8}
		],
		"lifetimeKwh": 132.5,
		"startDate": "2023-01-01"
	}`)

	data, err := mapEnergyUseData(dataMap)
	require.NoError(t, err)
	assert.Equal(t, 132.5, data.LifetimeKwh)
	require.Len(t, data.History, 2)
	assert.Equal(t, "2024-01-01", data.History[0].Date)
	assert.Equal(t, 3.2, data.History[0].EnergyUseKwh)

	delete(dataMap, "graphData")
	_, err = mapEnergyUseData(dataMap)
	assert.EqualError(t, err, "missing required keys")
}

func TestMapEnergyUseDataMissingEntryKey(t *testing.T) {
	dataMap := jsonMap(t, `{
		"graphData": [{"date": "2024-01-01"}],
		"lifetimeKwh": 10
	}`)
	_, err := mapEnergyUseData(dataMap)
	assert.EqualError(t, err, "missing required keys")
}
