// Package command renders the bundletool and adb command lines bundlekit
// runs. A Builder collects the user's choices, validates them in a fixed
// order and produces a single shell line; nothing here spawns a process.
package command

import (
	"errors"
	"runtime"
	"strings"

	"bundlekit/internal/config"
	"bundlekit/pkg/logger"
)

// Validation failures returned by ValidateAndGetCommand.
var (
	ErrToolPathMissing    = errors.New("tool path missing")
	ErrInputPathMissing   = errors.New("input path missing")
	ErrKeystoreIncomplete = errors.New("keystore info incomplete")
	ErrInvalidSerial      = errors.New("invalid serial id")
)

// Platform decides how path-bearing values are quoted.
type Platform int

const (
	// PlatformPOSIX inserts values as-is.
	PlatformPOSIX Platform = iota
	// PlatformWindows wraps every path in double quotes.
	PlatformWindows
)

// HostPlatform returns the platform bundlekit is running on.
func HostPlatform() Platform {
	if runtime.GOOS == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

func (p Platform) quote(path string) string {
	if p == PlatformWindows {
		return `"` + path + `"`
	}
	return path
}

// Builder accumulates build-apks options. The zero value is not ready for
// use; call New.
type Builder struct {
	bundletoolPath   string
	bundlePath       string
	overwrite        bool
	aapt2Path        string
	universal        bool
	signingMode      config.SigningMode
	keystorePath     string
	keystorePassword string
	keyAlias         string
	keyPassword      string

	serialEnabled bool
	serial        string

	verifyBridge bool
	bridgePath   string

	platform Platform
}

// New returns a Builder for the host platform with debug signing.
func New() *Builder {
	return &Builder{signingMode: config.SigningDebug, platform: HostPlatform()}
}

// FromConfig returns a Builder preloaded with every build field of cfg.
func FromConfig(cfg config.Config) *Builder {
	return New().
		BundletoolPath(cfg.BundletoolPath).
		BundlePath(cfg.BundlePath).
		Aapt2Path(cfg.Aapt2Path).
		Overwrite(cfg.Overwrite).
		Universal(cfg.Universal).
		SigningMode(cfg.SigningMode).
		KeystorePath(cfg.KeystorePath).
		KeystorePassword(cfg.KeystorePassword).
		KeyAlias(cfg.KeyAlias).
		KeyPassword(cfg.KeyPassword)
}

// BundletoolPath sets the bundletool jar.
func (b *Builder) BundletoolPath(p string) *Builder { b.bundletoolPath = p; return b }

// BundlePath sets the .aab to convert.
func (b *Builder) BundlePath(p string) *Builder { b.bundlePath = p; return b }

// Overwrite replaces an existing .apks.
func (b *Builder) Overwrite(v bool) *Builder { b.overwrite = v; return b }

// Aapt2Path sets a custom aapt2 binary; blank keeps bundletool's own.
func (b *Builder) Aapt2Path(p string) *Builder { b.aapt2Path = p; return b }

// Universal builds a single APK for every device configuration.
func (b *Builder) Universal(v bool) *Builder { b.universal = v; return b }

// KeystorePath sets the release keystore.
func (b *Builder) KeystorePath(p string) *Builder { b.keystorePath = p; return b }

// KeystorePassword sets the keystore password.
func (b *Builder) KeystorePassword(v string) *Builder { b.keystorePassword = v; return b }

// KeyAlias sets the signing key alias.
func (b *Builder) KeyAlias(v string) *Builder { b.keyAlias = v; return b }

// KeyPassword sets the signing key password.
func (b *Builder) KeyPassword(v string) *Builder { b.keyPassword = v; return b }

// SigningMode selects debug or release signing.
func (b *Builder) SigningMode(m config.SigningMode) *Builder { b.signingMode = m; return b }

// DeviceSerial restricts the build to one connected device when enabled.
func (b *Builder) DeviceSerial(enabled bool, serial string) *Builder {
	b.serialEnabled = enabled
	b.serial = serial
	return b
}

// VerifyBridge requests an adb version check against path.
func (b *Builder) VerifyBridge(enabled bool, path string) *Builder {
	b.verifyBridge = enabled
	b.bridgePath = path
	return b
}

// Platform overrides the quoting platform.
func (b *Builder) Platform(p Platform) *Builder { b.platform = p; return b }

// ValidateAndGetCommand checks the options and renders the build-apks line.
func (b *Builder) ValidateAndGetCommand() (string, error) {
	switch {
	case blank(b.bundletoolPath):
		return "", ErrToolPathMissing
	case blank(b.bundlePath):
		return "", ErrInputPathMissing
	case b.signingMode == config.SigningRelease &&
		(blank(b.keystorePath) || blank(b.keystorePassword) || blank(b.keyAlias) || blank(b.keyPassword)):
		return "", ErrKeystoreIncomplete
	case b.serialEnabled && blank(b.serial):
		return "", ErrInvalidSerial
	}

	logger.Debugf("built command: %s", b.render(true))
	return b.render(false), nil
}

// MaskedCommand renders the build-apks line with both passwords replaced
// by "****". It does not validate.
func (b *Builder) MaskedCommand() string { return b.render(true) }

func (b *Builder) render(mask bool) string {
	q := b.platform.quote
	args := []string{"java", "-jar", q(b.bundletoolPath), "build-apks"}
	if !blank(b.aapt2Path) {
		args = append(args, "--aapt2="+q(b.aapt2Path))
	}
	args = append(args,
		"--bundle="+q(b.bundlePath),
		"--output="+q(OutputPath(b.bundlePath)),
	)
	if b.universal {
		args = append(args, "--mode=universal")
	}
	if b.overwrite {
		args = append(args, "--overwrite")
	}
	if b.signingMode == config.SigningRelease {
		ksPass, keyPass := b.keystorePassword, b.keyPassword
		if mask {
			ksPass, keyPass = "****", "****"
		}
		args = append(args,
			"--ks="+q(b.keystorePath),
			"--ks-pass=pass:"+ksPass,
			"--ks-key-alias="+b.keyAlias,
			"--key-pass=pass:"+keyPass,
		)
	}
	if b.serialEnabled {
		args = append(args, "--device-id="+b.serial)
	}
	return strings.Join(args, " ")
}

// BridgeVersionCommand renders "<adb> version". It returns "" when no
// verification was requested or the path is blank; executors skip "".
func (b *Builder) BridgeVersionCommand() string {
	if !b.verifyBridge || blank(b.bridgePath) {
		return ""
	}
	return b.platform.quote(b.bridgePath) + " version"
}

// BridgeDevicesCommand renders "<adb> devices", or "" for a blank path.
func (b *Builder) BridgeDevicesCommand(adbPath string) string {
	if blank(adbPath) {
		return ""
	}
	return b.platform.quote(adbPath) + " devices"
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
