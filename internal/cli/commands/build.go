package commands

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"bundlekit/internal/apks"
	"bundlekit/internal/command"
	"bundlekit/internal/config"
	e "bundlekit/pkg/errors"
	"bundlekit/pkg/logger"
	"bundlekit/pkg/terminal"
)

// Build runs bundletool build-apks with the stored configuration, overridden
// by any flags given on the command line.
//
// Flags: --bundletool, --bundle, --aapt2, --overwrite, --universal,
// --release, --ks, --ks-pass, --ks-key-alias, --key-pass, --device-id,
// --unzip, --timeout, --save, --dry-run
func Build(env *Env, args []string) error {
	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	fs.SetOutput(env.Err)
	fs.StringVar(&cfg.BundletoolPath, "bundletool", cfg.BundletoolPath, "path to the bundletool jar")
	fs.StringVar(&cfg.BundlePath, "bundle", cfg.BundlePath, "path to the .aab to convert")
	fs.StringVar(&cfg.Aapt2Path, "aapt2", cfg.Aapt2Path, "custom aapt2 binary (bundletool ships its own)")
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "replace an existing .apks")
	fs.BoolVar(&cfg.Universal, "universal", cfg.Universal, "build a single universal APK")
	release := fs.Bool("release", cfg.IsRelease(), "sign with the keystore instead of the debug key")
	fs.StringVar(&cfg.KeystorePath, "ks", cfg.KeystorePath, "keystore path")
	fs.StringVar(&cfg.KeystorePassword, "ks-pass", cfg.KeystorePassword, "keystore password")
	fs.StringVar(&cfg.KeyAlias, "ks-key-alias", cfg.KeyAlias, "key alias")
	fs.StringVar(&cfg.KeyPassword, "key-pass", cfg.KeyPassword, "key password")
	deviceID := fs.String("device-id", "", "build only for the device with this serial")
	fs.BoolVar(&cfg.AutoUnzip, "unzip", cfg.AutoUnzip, "unpack the .apks and delete it after a successful build")
	fs.DurationVar(&cfg.Timeout.Duration, "timeout", cfg.Timeout.Duration, "abort the build after this long (0 disables)")
	save := fs.Bool("save", false, "store the effective settings for later runs")
	dryRun := fs.Bool("dry-run", false, "print the command without running it")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return e.Wrap(err, e.ErrInvalidConfig, "Invalid build flags")
	}

	cfg.SigningMode = config.SigningDebug
	if *release {
		cfg.SigningMode = config.SigningRelease
	}

	builder := command.FromConfig(cfg).DeviceSerial(fs.Changed("device-id"), *deviceID)
	line, err := builder.ValidateAndGetCommand()
	if err != nil {
		return validationError(err)
	}

	if *save {
		if err := env.saveConfig(cfg); err != nil {
			return err
		}
		logger.Verbose("settings saved")
	}

	if *dryRun {
		fmt.Fprintln(env.Out, builder.MaskedCommand())
		return nil
	}

	fmt.Fprintf(env.Out, "%s Building %s\n", terminal.IconBuild, cfg.BundlePath)
	x := env.executor(cfg, cfg.Timeout.Duration)
	x.Stream = env.Out
	logger.StartTimer("build-apks")
	res, err := x.Run(env.ctx(), line)
	logger.EndTimer("build-apks")
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%s %s in %s\n", terminal.IconSuccess, terminal.Success("Build finished"), res.Duration.Round(time.Millisecond))

	return finishBuild(env, cfg)
}

// finishBuild unpacks the archive or reports where it was written.
func finishBuild(env *Env, cfg config.Config) error {
	archive := command.OutputPath(cfg.BundlePath)
	if !cfg.AutoUnzip {
		fmt.Fprintf(env.Out, "File will be saved at %s.\n", command.OutputDir(cfg.BundlePath))
		return nil
	}

	bar := terminal.NewProgressBar(0, "Unpacking")
	report, err := apks.Extract(env.ctx(), archive, command.UnpackDir(cfg.BundlePath), apks.Options{
		RemoveArchive: true,
		Progress:      bar.Track,
	})
	if err != nil {
		return err
	}
	bar.Finish()
	fmt.Fprintf(env.Out, "%s Unpacked to %s\n", terminal.IconFolder, report.Dir)
	logger.Verbose(report.Summary())
	return nil
}

var validationHints = map[error]string{
	command.ErrToolPathMissing:    "Pass --bundletool or run: bundlekit config set bundletool_path <jar>",
	command.ErrInputPathMissing:   "Pass --bundle or run: bundlekit config set bundle_path <file.aab>",
	command.ErrKeystoreIncomplete: "Release signing needs --ks, --ks-pass, --ks-key-alias and --key-pass",
	command.ErrInvalidSerial:      "List connected serials with: bundlekit devices",
}

func validationError(err error) error {
	for sentinel, hint := range validationHints {
		if stderrors.Is(err, sentinel) {
			return e.New(e.ErrMissingConfig, "Cannot build command: "+err.Error()).
				WithCause(err).
				WithSuggestion(hint)
		}
	}
	return e.Wrap(err, e.ErrInvalidConfig, "Cannot build command")
}
