package core

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// VolumeUsage is the capacity of the volume holding a path.
type VolumeUsage struct {
	Mountpoint  string  `json:"mountpoint"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// GetVolumeUsage queries the volume that contains path.
func GetVolumeUsage(path string) (VolumeUsage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return VolumeUsage{}, fmt.Errorf("failed to query disk usage for %s: %w", path, err)
	}
	return VolumeUsage{
		Mountpoint:  u.Path,
		Total:       u.Total,
		Free:        u.Free,
		UsedPercent: u.UsedPercent,
	}, nil
}
