package main

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessUsage is what the OS reports for the soak process.
type ProcessUsage struct {
	CPUPercent float64
	RSS        uint64
	Threads    int32
}

func readProcessUsage() (*ProcessUsage, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	cpu, err := proc.CPUPercent()
	if err != nil {
		return nil, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return nil, err
	}
	threads, err := proc.NumThreads()
	if err != nil {
		return nil, err
	}

	return &ProcessUsage{CPUPercent: cpu, RSS: mem.RSS, Threads: threads}, nil
}
