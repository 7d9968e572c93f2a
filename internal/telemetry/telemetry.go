// Package telemetry samples host resource usage for inclusion in
// announce_host requests. Disk usage comes from a filesystem-usage call on
// the storage directory, not a scan of its contents. A failed sampling
// call surfaces as errs.ErrResource; no timeout bounds a slow call.
package telemetry

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/cuemby/scoutd/internal/errs"
	"github.com/cuemby/scoutd/internal/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Version and Commit are set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// Collector samples the local host's resource vector.
type Collector struct {
	// StorageDir is the directory whose filesystem usage backs the Disk
	// sample; normally the download cache root.
	StorageDir string
}

func NewCollector(storageDir string) *Collector {
	return &Collector{StorageDir: storageDir}
}

// Snapshot builds a model.HostSnapshot for identity. Any sampling
// failure is wrapped in errs.ErrResource so callers can apply spec.md's
// uniform "skip this cycle, log, retry next tick" policy.
func (c *Collector) Snapshot(identity model.HostIdentity) (*model.HostSnapshot, error) {
	cpuPercents, err := cpu.Percent(0, false)
	if err != nil {
		return nil, fmt.Errorf("%w: sample cpu: %v", errs.ErrResource, err)
	}
	var cpuPercent float64
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("%w: sample memory: %v", errs.ErrResource, err)
	}

	diskStat, err := disk.Usage(c.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("%w: sample disk %s: %v", errs.ErrResource, c.StorageDir, err)
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("%w: open self process: %v", errs.ErrResource, err)
	}
	processCPUPercent, err := proc.CPUPercent()
	if err != nil {
		return nil, fmt.Errorf("%w: sample process cpu: %v", errs.ErrResource, err)
	}
	processMemPercent, err := proc.MemoryPercent()
	if err != nil {
		return nil, fmt.Errorf("%w: sample process memory: %v", errs.ErrResource, err)
	}

	// used/used_percent are derived from total and free directly rather than
	// trusting gopsutil's own Used/UsedPercent, which reserve differently on
	// some platforms. total - free matches statvfs-based "used" semantics.
	diskUsed := diskStat.Total - diskStat.Free
	var diskUsedPercent float64
	if diskStat.Total > 0 {
		diskUsedPercent = float64(diskUsed) / float64(diskStat.Total) * 100
	}

	snapshot := &model.HostSnapshot{
		Identity: identity,
		Cpu: model.Cpu{
			LogicalCount:   uint32(runtime.NumCPU()),
			PhysicalCount:  uint32(runtime.NumCPU()),
			Percent:        cpuPercent,
			ProcessPercent: processCPUPercent,
		},
		Memory: model.Memory{
			Total:              vmStat.Total,
			Available:          vmStat.Available,
			Used:               vmStat.Used,
			Free:               vmStat.Free,
			UsedPercent:        vmStat.UsedPercent,
			ProcessUsedPercent: float64(processMemPercent),
		},
		Disk: model.Disk{
			Total:       diskStat.Total,
			Free:        diskStat.Free,
			Used:        diskUsed,
			UsedPercent: diskUsedPercent,
			// Inode fields are reported as 0: unimplemented, per design.
		},
		Network: model.Network{
			IDC:      identity.IDC,
			Location: identity.Location,
			// Connection counts are reported as 0: unimplemented, per design.
		},
		Build: model.Build{
			Version:   Version,
			Commit:    Commit,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		},
	}

	if info, ok := debug.ReadBuildInfo(); ok && snapshot.Build.Version == "dev" {
		snapshot.Build.Version = info.Main.Version
	}

	return snapshot, nil
}

// Hostname returns the local hostname, falling back to "unknown" rather
// than failing identity construction over a cosmetic field.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
