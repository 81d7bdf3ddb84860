package models

// Manifest mirrors a Home Assistant custom integration manifest.json,
// enough of it to report the installed ha_zyxel version.
type Manifest struct {
	Domain        string   `json:"domain"`
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	Documentation string   `json:"documentation,omitempty"`
	IssueTracker  string   `json:"issue_tracker,omitempty"`
	CodeOwners    []string `json:"codeowners,omitempty"`
	Requirements  []string `json:"requirements,omitempty"`
	IoTClass      string   `json:"iot_class,omitempty"`
	ConfigFlow    bool     `json:"config_flow,omitempty"`
}
