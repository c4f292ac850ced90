// Package sysinfo collects the host facts reported in agent heartbeats.
package sysinfo

import (
	"os"
	"runtime"
)

type Info struct {
	Hostname string
	Platform string
	CPUs     int
	// FreeMem and TotalMem are in bytes; nil where the platform offers no
	// cheap way to read them.
	FreeMem  *float64
	TotalMem *float64
}

func Collect() Info {
	host, _ := os.Hostname()
	info := Info{
		Hostname: host,
		Platform: runtime.GOOS,
		CPUs:     runtime.NumCPU(),
	}
	info.FreeMem, info.TotalMem = memory()
	return info
}
