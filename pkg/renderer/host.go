package renderer

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	CPUModel      string
	GHz           float64
	PhysicalCores int
	LogicalCores  int
	TotalMemGB    float64
	FreeMemGB     float64
}

// DescribeHost collects CPU and memory information about the current host
func DescribeHost() (HostInfo, error) {
	var info HostInfo

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, fmt.Errorf("failed to read cpu info: %w", err)
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
		info.GHz = cpuInfo[0].Mhz / 1000
	}

	if info.PhysicalCores, err = cpu.Counts(false); err != nil {
		return info, fmt.Errorf("failed to count cores: %w", err)
	}
	if info.LogicalCores, err = cpu.Counts(true); err != nil {
		return info, fmt.Errorf("failed to count cores: %w", err)
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("failed to read memory info: %w", err)
	}
	info.TotalMemGB = float64(memInfo.Total) / (1024 * 1024 * 1024)
	info.FreeMemGB = float64(memInfo.Available) / (1024 * 1024 * 1024)

	return info, nil
}

func (h HostInfo) String() string {
	return fmt.Sprintf("%s (%.2f GHz), %d cores / %d threads, %.1f GB RAM (%.1f GB free)",
		h.CPUModel, h.GHz, h.PhysicalCores, h.LogicalCores, h.TotalMemGB, h.FreeMemGB)
}
