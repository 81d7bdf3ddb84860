package zyxel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// The NWA50AX CLI (firmware V7.10) prints loosely aligned key/value text.
// Every parser below tolerates missing fields and returns zero values for
// them, a partial snapshot beats no snapshot.

var (
	reModel    = regexp.MustCompile(`model\s*:\s*(.+)`)
	reFirmware = regexp.MustCompile(`firmware version\s*:\s*(.+)`)
	reBuild    = regexp.MustCompile(`build date\s*:\s*(.+)`)

	reUptimeDays = regexp.MustCompile(`(\d+)\s+days?\s+(\d+):(\d+):(\d+)`)
	reUptimeHMS  = regexp.MustCompile(`(\d+):(\d+):(\d+)`)

	reCPUCore  = regexp.MustCompile(`CPU core (\d+) utilization:\s*(\d+)\s*%`)
	reCPU1Min  = regexp.MustCompile(`CPU core (\d+) utilization for 1 min:\s*(\d+)\s*%`)
	reCPU5Min  = regexp.MustCompile(`CPU core (\d+) utilization for 5 min:\s*(\d+)\s*%`)
	reMemUsage = regexp.MustCompile(`memory usage:\s*(\d+)\s*%`)

	reStationSplit = regexp.MustCompile(`index:\s*\d+`)
	reStationMAC   = regexp.MustCompile(`MAC:\s*([\da-fA-F:]+)`)
	reStationIP    = regexp.MustCompile(`IPv4:\s*([\d.]+)`)
	reDisplaySSID  = regexp.MustCompile(`Display SSID:\s*(.+)`)
	reSSID         = regexp.MustCompile(`SSID:\s*(.+)`)
	reSecurity     = regexp.MustCompile(`Security:\s*(.+)`)
	reRSSIdBm      = regexp.MustCompile(`RSSI dBm:\s*(-?\d+)`)
	reRSSI         = regexp.MustCompile(`RSSI:\s*(\d+)`)
	reBand         = regexp.MustCompile(`Band:\s*([\dG.Hz]+)`)
	reSlot         = regexp.MustCompile(`Slot:\s*(\d+)`)
	reTxRate       = regexp.MustCompile(`TxRate:\s*(\d+)M`)
	reRxRate       = regexp.MustCompile(`RxRate:\s*(\d+)M`)
	reCapability   = regexp.MustCompile(`Capability:\s*(.+)`)
	reTime         = regexp.MustCompile(`Time:\s*(.+)`)

	reLanRow   = regexp.MustCompile(`lan\s+Up\s+([\d.]+)\s+([\d.]+)`)
	reIfaceRow = regexp.MustCompile(`(\d+)\s+(\S+)\s+(Up|Down|n/a)\s+([\d.]+|n/a)`)

	reSlotHeader = regexp.MustCompile(`slot: (slot\d)`)
	reActivate   = regexp.MustCompile(`Activate:\s*(\w+)`)
	reRadioBand  = regexp.MustCompile(`Band:\s*([\dG.]+)`)
	reSSIDProf   = regexp.MustCompile(`SSID_profile_\d+:\s*(\S+)`)
	rePortStatus = regexp.MustCompile(`1\s+(\S+)\s+\d+\s+\d+\s+\d+\s+\d+\s+\d+\s+(\d+)\s+(\d+)\s+([\d:]+)\s+\d+\s+(\d+)\s+(\d+)`)
)

// ParseVersion reads 'show version' output:
//
//	model           : NWA50AX
//	firmware version: V7.10(ABYW.3)
//	build date      : 2025-06-29 01:00:28
func ParseVersion(output string) models.DeviceInfo {
	info := models.DeviceInfo{Model: "Unknown", Firmware: "Unknown", BuildDate: "Unknown"}

	if m := reModel.FindStringSubmatch(output); m != nil {
		info.Model = strings.TrimSpace(m[1])
	}
	if m := reFirmware.FindStringSubmatch(output); m != nil {
		info.Firmware = strings.TrimSpace(m[1])
	}
	if m := reBuild.FindStringSubmatch(output); m != nil {
		info.BuildDate = strings.TrimSpace(m[1])
	}
	return info
}

// ParseUptime reads 'show system uptime' ("system uptime: 1 days 05:34:40")
// and returns seconds. Uptimes under a day come without the days part.
func ParseUptime(output string) int64 {
	if m := reUptimeDays.FindStringSubmatch(output); m != nil {
		days, _ := strconv.ParseInt(m[1], 10, 64)
		hours, _ := strconv.ParseInt(m[2], 10, 64)
		minutes, _ := strconv.ParseInt(m[3], 10, 64)
		seconds, _ := strconv.ParseInt(m[4], 10, 64)
		return days*86400 + hours*3600 + minutes*60 + seconds
	}
	if m := reUptimeHMS.FindStringSubmatch(output); m != nil {
		hours, _ := strconv.ParseInt(m[1], 10, 64)
		minutes, _ := strconv.ParseInt(m[2], 10, 64)
		seconds, _ := strconv.ParseInt(m[3], 10, 64)
		return hours*3600 + minutes*60 + seconds
	}
	return 0
}

// ParseCPU reads 'show cpu all'. The summary values are the mean across
// cores, matching what the device web UI shows.
func ParseCPU(output string) models.CPUStats {
	var stats models.CPUStats

	if cores := reCPUCore.FindAllStringSubmatch(output, -1); len(cores) > 0 {
		sum := 0
		for _, c := range cores {
			v, _ := strconv.Atoi(c[2])
			stats.Cores = append(stats.Cores, v)
			sum += v
		}
		stats.Current = sum / len(cores)
	}
	if cores := reCPU1Min.FindAllStringSubmatch(output, -1); len(cores) > 0 {
		stats.Avg1Min = meanOf(cores)
	}
	if cores := reCPU5Min.FindAllStringSubmatch(output, -1); len(cores) > 0 {
		stats.Avg5Min = meanOf(cores)
	}
	return stats
}

func meanOf(matches [][]string) int {
	sum := 0
	for _, m := range matches {
		v, _ := strconv.Atoi(m[2])
		sum += v
	}
	return sum / len(matches)
}

// ParseMemory reads 'show mem status' ("memory usage: 53%").
func ParseMemory(output string) int {
	if m := reMemUsage.FindStringSubmatch(output); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v
	}
	return 0
}

// ParseStations reads 'show wireless-hal station info'. Stations come as
// "index: N" blocks of key/value lines. Blocks without a MAC are dropped.
// The cosmetic 'Display SSID' wins over the profile SSID when both appear.
func ParseStations(output string) []models.WifiClient {
	var clients []models.WifiClient

	// The text before the first "index:" is table chrome, skip it.
	blocks := reStationSplit.Split(output, -1)
	for _, block := range blocks[1:] {
		var c models.WifiClient

		if m := reStationMAC.FindStringSubmatch(block); m != nil {
			c.MAC = strings.ToUpper(m[1])
		}
		if c.MAC == "" {
			continue
		}
		if m := reStationIP.FindStringSubmatch(block); m != nil {
			c.IP = m[1]
		}
		if m := reDisplaySSID.FindStringSubmatch(block); m != nil {
			c.SSID = strings.TrimSpace(m[1])
		} else if m := reSSID.FindStringSubmatch(block); m != nil {
			c.SSID = strings.TrimSpace(m[1])
		}
		if m := reSecurity.FindStringSubmatch(block); m != nil {
			c.Security = strings.TrimSpace(m[1])
		}
		if m := reRSSIdBm.FindStringSubmatch(block); m != nil {
			c.RSSIdBm, _ = strconv.Atoi(m[1])
		}
		if m := reRSSI.FindStringSubmatch(block); m != nil {
			c.RSSIPercent, _ = strconv.Atoi(m[1])
		}
		if m := reBand.FindStringSubmatch(block); m != nil {
			c.Band = m[1]
		}
		if m := reSlot.FindStringSubmatch(block); m != nil {
			c.Slot, _ = strconv.Atoi(m[1])
		}
		if m := reTxRate.FindStringSubmatch(block); m != nil {
			c.TxRateMbps, _ = strconv.Atoi(m[1])
		}
		if m := reRxRate.FindStringSubmatch(block); m != nil {
			c.RxRateMbps, _ = strconv.Atoi(m[1])
		}
		if m := reCapability.FindStringSubmatch(block); m != nil {
			c.Capability = strings.TrimSpace(m[1])
		}
		if m := reTime.FindStringSubmatch(block); m != nil {
			c.ConnectedSince = strings.TrimSpace(m[1])
		}

		clients = append(clients, c)
	}
	return clients
}

// ParseInterfaces reads 'show interface all'. The lan row provides the
// primary address.
func ParseInterfaces(output string) models.NetworkInfo {
	network := models.NetworkInfo{IPAddress: "Unknown", Netmask: "Unknown"}

	if m := reLanRow.FindStringSubmatch(output); m != nil {
		network.IPAddress = m[1]
		network.Netmask = m[2]
	}

	for _, row := range reIfaceRow.FindAllStringSubmatch(output, -1) {
		iface := models.Interface{Name: row[2], Status: row[3]}
		if row[4] != "n/a" {
			iface.IPAddress = row[4]
		}
		network.Interfaces = append(network.Interfaces, iface)
	}
	return network
}

// ParseWLAN reads 'show wlan all', one block per radio slot (slot1 is 2.4G,
// slot2 is 5G).
func ParseWLAN(output string) []models.RadioInfo {
	var radios []models.RadioInfo

	headers := reSlotHeader.FindAllStringSubmatchIndex(output, -1)
	for i, loc := range headers {
		radio := models.RadioInfo{Slot: output[loc[2]:loc[3]], Band: "Unknown"}

		end := len(output)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		block := output[loc[1]:end]

		if a := reActivate.FindStringSubmatch(block); a != nil {
			radio.Active = strings.EqualFold(a[1], "yes")
		}
		if b := reRadioBand.FindStringSubmatch(block); b != nil {
			radio.Band = b[1]
		}
		for _, s := range reSSIDProf.FindAllStringSubmatch(block, -1) {
			radio.SSIDs = append(radio.SSIDs, s[1])
		}
		radios = append(radios, radio)
	}
	return radios
}

// ParsePortStatus reads the port 1 row of 'show port status':
//
//	Port Status       TxPkts  RxPkts  TxBcast RxBcast Colli. TxB/s RxB/s Up Time  PVID TxBytes   RxBytes
//	1    1000M/Full   2937780 5799031 3176    139355  0      8616  15312 29:33:11 20   796587774 5569274515
func ParsePortStatus(output string) models.PortStats {
	port := models.PortStats{Status: "Unknown", Speed: "Unknown", Uptime: "Unknown"}

	m := rePortStatus.FindStringSubmatch(output)
	if m == nil {
		return port
	}

	port.Status = m[1]
	port.TxRate, _ = strconv.ParseInt(m[2], 10, 64)
	port.RxRate, _ = strconv.ParseInt(m[3], 10, 64)
	port.Uptime = m[4]
	port.TxBytes, _ = strconv.ParseInt(m[5], 10, 64)
	port.RxBytes, _ = strconv.ParseInt(m[6], 10, 64)

	// "1000M/Full" -> speed "1000M"
	if speed, _, found := strings.Cut(port.Status, "/"); found {
		port.Speed = speed
	}
	return port
}
