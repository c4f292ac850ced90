package dto

import (
	"encoding/json"

	"monitor-hub/backend/app/models"
)

// DeviceRequest is a heartbeat. Keys other than the named fields are kept in
// Meta.
type DeviceRequest struct {
	User     string           `json:"user" validate:"required"`
	Hostname string           `json:"hostname"`
	Platform string           `json:"platform"`
	FreeMem  *float64         `json:"freemem"`
	TotalMem *float64         `json:"totalmem"`
	CPUs     *int             `json:"cpus"`
	Location *models.Location `json:"location"`
	City     string           `json:"city"`
	Meta     map[string]any   `json:"-"`
}

var deviceKeys = map[string]bool{
	"user": true, "hostname": true, "platform": true, "freemem": true,
	"totalmem": true, "cpus": true, "location": true, "city": true,
}

func (r *DeviceRequest) UnmarshalJSON(b []byte) error {
	type plain DeviceRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = DeviceRequest(p)
	for k, v := range raw {
		if deviceKeys[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if r.Meta == nil {
			r.Meta = map[string]any{}
		}
		r.Meta[k] = val
	}
	return nil
}

type DeviceStatusRequest struct {
	User   string `json:"user" validate:"required"`
	Status string `json:"status" validate:"required,oneof=online offline"`
}

type DeviceResponse struct {
	Success bool           `json:"success"`
	Device  *models.Device `json:"device"`
}

type DeviceListResponse struct {
	Success bool            `json:"success"`
	Devices []models.Device `json:"devices"`
}
