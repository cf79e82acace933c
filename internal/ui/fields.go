package ui

import (
	"strconv"
	"strings"

	"bundlekit/internal/config"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindSecret
	kindToggle
)

// UI-only field keys; everything else is a config key.
const (
	keySerialFilter = "serial_filter"
	keySerial       = "device_serial"
)

// field is one row of the settings form.
type field struct {
	key   string
	label string
	help  string
	kind  fieldKind
}

var allFields = []field{
	{key: "bundletool_path", label: "Bundletool jar", kind: kindText, help: "Download bundletool from https://github.com/google/bundletool/releases"},
	{key: "bundle_path", label: "Aab file", kind: kindText},
	{key: "overwrite", label: "Overwrite", kind: kindToggle, help: "Replace an existing .apks instead of failing."},
	{key: "aapt2_path", label: "Aapt2 path", kind: kindText, help: "Custom aapt2; bundletool ships its own."},
	{key: "universal", label: "Mode universal", kind: kindToggle, help: "Build one APK compatible with every device configuration."},
	{key: "signing_mode", label: "Signing mode", kind: kindToggle},
	{key: "keystore_path", label: "Keystore path", kind: kindText},
	{key: "keystore_password", label: "Keystore password", kind: kindSecret},
	{key: "key_alias", label: "Key alias", kind: kindText},
	{key: "key_password", label: "Key password", kind: kindSecret},
	{key: "auto_unzip", label: "Unzip and delete apks", kind: kindToggle},
	{key: "adb_path", label: "Adb path", kind: kindText, help: "Set up adb to build for a connected device."},
	{key: keySerialFilter, label: "Device id", kind: kindToggle, help: "Build for one device by serial. Use with Mode universal to get one apk."},
	{key: keySerial, label: "Serial id", kind: kindText},
}

var releaseOnly = map[string]bool{
	"keystore_path": true, "keystore_password": true, "key_alias": true, "key_password": true,
}

// visibleFields returns the rows shown for the current state.
func (model Model) visibleFields() []field {
	out := make([]field, 0, len(allFields))
	for _, f := range allFields {
		switch {
		case releaseOnly[f.key] && !model.cfg.IsRelease():
			continue
		case f.key == keySerialFilter && model.cfg.AdbPath == "":
			continue
		case f.key == keySerial && (model.cfg.AdbPath == "" || !model.serialEnabled):
			continue
		}
		out = append(out, f)
	}
	return out
}

// value returns the raw value of a field.
func (model Model) value(key string) string {
	c := model.cfg
	switch key {
	case "bundletool_path":
		return c.BundletoolPath
	case "bundle_path":
		return c.BundlePath
	case "aapt2_path":
		return c.Aapt2Path
	case "overwrite":
		return strconv.FormatBool(c.Overwrite)
	case "universal":
		return strconv.FormatBool(c.Universal)
	case "signing_mode":
		return string(c.SigningMode)
	case "keystore_path":
		return c.KeystorePath
	case "keystore_password":
		return c.KeystorePassword
	case "key_alias":
		return c.KeyAlias
	case "key_password":
		return c.KeyPassword
	case "auto_unzip":
		return strconv.FormatBool(c.AutoUnzip)
	case "adb_path":
		return c.AdbPath
	case keySerialFilter:
		return strconv.FormatBool(model.serialEnabled)
	case keySerial:
		return model.serial
	}
	return ""
}

// display renders a field value for the form.
func (model Model) display(f field) string {
	v := model.value(f.key)
	switch f.kind {
	case kindSecret:
		if v == "" {
			return ""
		}
		return strings.Repeat("•", 8)
	case kindToggle:
		if f.key == "signing_mode" {
			if model.cfg.IsRelease() {
				return "( ) Debug  (•) Release"
			}
			return "(•) Debug  ( ) Release"
		}
		if v == "true" {
			return "[x]"
		}
		return "[ ]"
	}
	return v
}

// toggled returns the flipped value of a toggle field.
func (model Model) toggled(key string) string {
	if key == "signing_mode" {
		if model.cfg.IsRelease() {
			return string(config.SigningDebug)
		}
		return string(config.SigningRelease)
	}
	b, _ := strconv.ParseBool(model.value(key))
	return strconv.FormatBool(!b)
}
