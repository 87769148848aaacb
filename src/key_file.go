package src

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-ini/ini"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func Load_config_file(config_file string) (*ini.File, error) {
	kf, err := ini.Load(config_file)
	if err != nil {
		log.Warnf("Failed to load config file %s: %v", config_file, err)
		return nil, err
	}
	return kf, nil
}

func G_key_file_has_group(kf *ini.File, group string) bool {
	return kf.HasSection(group)
}

// Parse_key_file_group copies the keys of group onto the matching flags of
// fs. Flags already given on the command line keep their value. Keys may use
// '_' or '-' between words.
func Parse_key_file_group(kf *ini.File, group string, fs *pflag.FlagSet) error {
	section, err := kf.GetSection(group)
	if err != nil {
		log.Errorf("Loading configuration on section %s is null", group)
		return err
	}
	for _, key := range section.Keys() {
		var name = strings.ReplaceAll(key.Name(), "_", "-")
		var flag = fs.Lookup(name)
		if flag == nil {
			log.Warnf("Unknown option %s in group [%s], ignored", key.Name(), group)
			continue
		}
		if flag.Changed {
			log.Debugf("Option %s given on the command line, config value ignored", name)
			continue
		}
		if err = fs.Set(name, key.Value()); err != nil {
			return fmt.Errorf("invalid value %q for %s in group [%s]: %w", key.Value(), key.Name(), group, err)
		}
	}
	log.Infof("Config file loaded")
	return nil
}

// Initialize_common_options resolves which defaults file applies (an explicit
// one, or DEFAULTS_FILE when it exists) and layers its group onto fs.
func Initialize_common_options(defaults_file string, group string, fs *pflag.FlagSet) error {
	if defaults_file == "" {
		if G_file_test(DEFAULTS_FILE) {
			defaults_file = DEFAULTS_FILE
		} else {
			log.Infof("Using no configuration file")
			return nil
		}
	} else if !G_file_test(defaults_file) {
		log.Errorf("Default file %s not found", defaults_file)
		return fmt.Errorf("default file %s not found", defaults_file)
	}
	if !path.IsAbs(defaults_file) {
		defaults_file = path.Join(G_get_current_dir(), defaults_file)
	}
	kf, err := Load_config_file(defaults_file)
	if err != nil {
		return err
	}
	if !G_key_file_has_group(kf, group) {
		log.Infof("Config file %s has no [%s] group", defaults_file, group)
		return nil
	}
	return Parse_key_file_group(kf, group, fs)
}
