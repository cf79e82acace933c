package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDevices(t *testing.T) {
	out := "adb server version (40) doesn't match this client (41); killing...\n" +
		"* daemon not running; starting now at tcp:5037\n" +
		"* daemon started successfully\n" +
		"List of devices attached\n" +
		"emulator-5554\tdevice\n" +
		"R58M123ABC\tunauthorized\n" +
		"\n"
	devices := ParseDevices(out)
	assert.Equal(t, []Device{
		{Serial: "emulator-5554", State: "device"},
		{Serial: "R58M123ABC", State: "unauthorized"},
	}, devices)
	assert.True(t, devices[0].Ready())
	assert.False(t, devices[1].Ready())
}

func TestParseDevices_IgnoresLinesWithoutTab(t *testing.T) {
	out := "error: protocol fault (couldn't read status): Connection reset by peer\n" +
		"List of devices attached\n" +
		"192.168.1.20:5555\toffline  \n"
	assert.Equal(t, []Device{{Serial: "192.168.1.20:5555", State: "offline"}}, ParseDevices(out))
}

func TestParseDevices_Empty(t *testing.T) {
	assert.Empty(t, ParseDevices("List of devices attached\n\n"))
	assert.Empty(t, ParseDevices(""))
}
