package main

import (
	"fmt"

	"github.com/dhamidi/jdkapi/config"
	"github.com/dhamidi/jdkapi/extract"
	"github.com/dhamidi/jdkapi/image"
	"github.com/dhamidi/jdkapi/modgraph"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	configPath string
	verbosity  int
	logFile    string
)

func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log more (repeat for debug output)")
	cmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")
}

// loadConfig reads the configuration, applies the global flags, validates
// the result and sets up logging.
func loadConfig(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = verbosity
	}
	if flags.Changed("log") {
		cfg.Log.File = logFile
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	return cfg, nil
}

// imageFlags are the flags shared by the commands that read an image.
type imageFlags struct {
	jimage         string
	extractDir     string
	keepExtracted  bool
	addModules     []string
	limitModules   []string
	noModuleFilter bool
	noLinkCheck    bool
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jimage, "jimage", "", "`path` of the jimage tool (default $JAVA_HOME/bin/jimage)")
	cmd.Flags().StringVar(&f.extractDir, "extract-dir", "", "`directory` of classes already extracted with jimage extract --dir")
	cmd.Flags().BoolVar(&f.keepExtracted, "keep-extracted", false, "keep the temporary extraction")
	cmd.Flags().StringSliceVar(&f.addModules, "add-modules", nil, "root modules to resolve in addition to the defaults")
	cmd.Flags().StringSliceVar(&f.limitModules, "limit-modules", nil, "resolve only these root modules")
	cmd.Flags().BoolVar(&f.noModuleFilter, "no-module-filter", false, "keep classes of packages that are not exported")
	cmd.Flags().BoolVar(&f.noLinkCheck, "no-link-check", false, "keep classes referring to types outside the boot graph")
}

func (f *imageFlags) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("jimage") {
			cfg.Jimage = f.jimage
		}
		if flags.Changed("extract-dir") {
			cfg.ExtractDir = f.extractDir
		}
		if flags.Changed("keep-extracted") {
			cfg.KeepExtracted = f.keepExtracted
		}
		if flags.Changed("add-modules") {
			cfg.AddModules = f.addModules
		}
		if flags.Changed("limit-modules") {
			cfg.LimitModules = f.limitModules
		}
		if flags.Changed("no-module-filter") {
			cfg.ModuleFilter = !f.noModuleFilter
		}
		if flags.Changed("no-link-check") {
			cfg.LinkCheck = !f.noLinkCheck
		}
	}
}

// options loads the configuration and turns it into extraction options for
// the image at path.
func (f *imageFlags) options(cmd *cobra.Command, path string) (extract.Options, error) {
	cfg, err := loadConfig(cmd, f.apply(cmd))
	if err != nil {
		return extract.Options{}, err
	}
	if path == "" {
		path = cfg.ImagePath()
	}
	if path == "" {
		return extract.Options{}, fmt.Errorf("no image given and %s is not set", config.EnvJavaHome)
	}
	return extract.Options{
		Image:         path,
		Tool:          image.Tool{Path: cfg.JimagePath()},
		ExtractDir:    cfg.ExtractDir,
		KeepExtracted: cfg.KeepExtracted,
		Graph: modgraph.Options{
			AddModules:   cfg.AddModules,
			LimitModules: cfg.LimitModules,
		},
		NoModuleFilter: !cfg.ModuleFilter,
		NoLinkCheck:    !cfg.LinkCheck,
		Diagnostics:    cmd.ErrOrStderr(),
	}, nil
}
