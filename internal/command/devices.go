package command

import (
	"bufio"
	"strings"
)

// Device is one line of "adb devices" output.
type Device struct {
	Serial string
	State  string
}

// Ready reports whether the device accepts installs.
func (d Device) Ready() bool { return d.State == "device" }

// ParseDevices reads "adb devices" output. Only "<serial>\t<state>" lines
// count; daemon chatter and the "List of devices attached" header are skipped.
func ParseDevices(output string) []Device {
	var devices []Device
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "List of devices") {
			continue
		}
		serial, rest, ok := strings.Cut(line, "\t")
		state := strings.Fields(rest)
		if !ok || serial == "" || len(state) == 0 {
			continue
		}
		devices = append(devices, Device{Serial: strings.TrimSpace(serial), State: state[0]})
	}
	return devices
}
