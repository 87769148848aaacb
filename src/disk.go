package src

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/disk"
	log "github.com/sirupsen/logrus"
)

// Is_disk_space_ok reports whether the filesystem holding directory has more
// than need bytes free, together with the free byte count.
func Is_disk_space_ok(directory string, need uint64) (bool, uint64, error) {
	if !filepath.IsAbs(directory) {
		pwd, _ := os.Getwd()
		directory = filepath.Join(pwd, directory)
	}
	usage, err := disk.Usage(directory)
	if err != nil {
		log.Errorf("Error getting disk usage: %v", err)
		return false, 0, err
	}
	return usage.Free > need, usage.Free, nil
}
