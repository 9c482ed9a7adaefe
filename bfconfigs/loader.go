package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
	"github.com/reusee/taibf/logs"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "read settings from a cue file, before the discovered ones")

var filenames = []string{
	"taibf.cue",
	".taibf.cue",
}

// NewLoader returns a loader over sources checked against the settings schema.
func NewLoader(sources ...configs.Source) configs.Loader {
	return configs.NewLoader(sources, schema)
}

// discoverConfigs lists config files in precedence order: working directory, user config dir, /etc.
func discoverConfigs() (paths []string) {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := append([]string{}, *configFlag...)
	paths = append(paths, discoverConfigs()...)
	if len(paths) > 0 {
		logger.Debug("config file",
			"paths", paths,
		)
	}
	return NewLoader(configs.Files(paths...)...)
}
