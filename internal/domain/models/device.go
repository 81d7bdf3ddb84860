package models

import (
	"fmt"
	"strings"
	"time"
)

// DeviceInfo comes from 'show version'.
type DeviceInfo struct {
	Model     string `json:"model"`
	Firmware  string `json:"firmware"`
	BuildDate string `json:"build_date"`
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("%s, firmware %s", d.Model, d.Firmware)
}

// CPUStats comes from 'show cpu all'. Current/Avg values are the mean across
// cores, Cores keeps the per-core utilization.
type CPUStats struct {
	Current int   `json:"current"`
	Avg1Min int   `json:"avg_1min"`
	Avg5Min int   `json:"avg_5min"`
	Cores   []int `json:"cores"`
}

// WifiClient is one station from 'show wireless-hal station info'.
type WifiClient struct {
	MAC            string `json:"mac"`
	IP             string `json:"ip,omitempty"`
	SSID           string `json:"ssid,omitempty"`
	Security       string `json:"security,omitempty"`
	RSSIPercent    int    `json:"rssi_percent,omitempty"`
	RSSIdBm        int    `json:"rssi_dbm,omitempty"`
	Band           string `json:"band,omitempty"`
	Slot           int    `json:"slot,omitempty"`
	TxRateMbps     int    `json:"tx_rate,omitempty"`
	RxRateMbps     int    `json:"rx_rate,omitempty"`
	Capability     string `json:"capability,omitempty"`
	ConnectedSince string `json:"connected_since,omitempty"`
}

// Interface is one row of 'show interface all'.
type Interface struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	IPAddress string `json:"ip,omitempty"`
}

// NetworkInfo aggregates 'show interface all'. The lan row provides the
// primary address.
type NetworkInfo struct {
	IPAddress  string      `json:"ip_address"`
	Netmask    string      `json:"netmask"`
	Interfaces []Interface `json:"interfaces"`
}

// RadioInfo is one slot of 'show wlan all' (slot1 is 2.4G, slot2 is 5G).
type RadioInfo struct {
	Slot   string   `json:"slot"`
	Band   string   `json:"band"`
	Active bool     `json:"active"`
	SSIDs  []string `json:"ssids"`
}

// PortStats is the uplink row of 'show port status'. Rates are bytes per
// second as reported by the device.
type PortStats struct {
	Status  string `json:"status"`
	Speed   string `json:"speed"`
	TxRate  int64  `json:"tx_rate"`
	RxRate  int64  `json:"rx_rate"`
	TxBytes int64  `json:"tx_bytes"`
	RxBytes int64  `json:"rx_bytes"`
	Uptime  string `json:"uptime"`
}

// DeviceSnapshot is everything one polling pass collects from the access
// point. Commands that failed leave their zero values in place.
type DeviceSnapshot struct {
	Info          DeviceInfo   `json:"device_info"`
	UptimeSeconds int64        `json:"uptime"`
	CPU           CPUStats     `json:"cpu"`
	MemoryUsage   int          `json:"memory"`
	Clients       []WifiClient `json:"clients"`
	Network       NetworkInfo  `json:"network"`
	Radios        []RadioInfo  `json:"radios"`
	Port          PortStats    `json:"port"`
	FetchedAt     time.Time    `json:"fetched_at"`
}

func (s *DeviceSnapshot) Uptime() time.Duration {
	return time.Duration(s.UptimeSeconds) * time.Second
}

func (s *DeviceSnapshot) ClientCount() int {
	return len(s.Clients)
}

// Clients24G counts stations on the 2.4 GHz band.
func (s *DeviceSnapshot) Clients24G() int {
	count := 0
	for _, c := range s.Clients {
		if strings.Contains(c.Band, "2.4") {
			count++
		}
	}
	return count
}

// Clients5G counts stations on the 5 GHz band.
func (s *DeviceSnapshot) Clients5G() int {
	count := 0
	for _, c := range s.Clients {
		if strings.HasPrefix(c.Band, "5") {
			count++
		}
	}
	return count
}
