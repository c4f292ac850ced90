//go:build linux

package sysinfo

import "golang.org/x/sys/unix"

func memory() (free, total *float64) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return nil, nil
	}
	unit := float64(si.Unit)
	if unit == 0 {
		unit = 1
	}
	f := float64(si.Freeram) * unit
	t := float64(si.Totalram) * unit
	return &f, &t
}
