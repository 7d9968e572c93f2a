package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cuemby/scoutd/internal/announcer"
	"github.com/cuemby/scoutd/internal/config"
	"github.com/cuemby/scoutd/internal/health"
	"github.com/cuemby/scoutd/internal/idgen"
	"github.com/cuemby/scoutd/internal/lifecycle"
	"github.com/cuemby/scoutd/internal/log"
	"github.com/cuemby/scoutd/internal/model"
	"github.com/cuemby/scoutd/internal/storage"
	"github.com/cuemby/scoutd/internal/telemetry"
	"github.com/cuemby/scoutd/internal/transport/manager"
	"github.com/cuemby/scoutd/internal/transport/scheduler"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Version and Commit are set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "scoutd",
	Short:   "scoutd announces local host and peer inventory to a Manager and Scheduler",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("scoutd version %s\ncommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("config", "/etc/scoutd/config.yaml", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "output logs in JSON format")

	cobra.OnInitialize(initLogging)
	rootCmd.AddCommand(runCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the announcer daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return run(cmd.Context(), configPath)
	},
}

func run(ctx context.Context, configPath string) error {
	logger := log.WithComponent("main")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	telemetry.Version = Version
	telemetry.Commit = Commit

	idGen := idgen.NewGenerator()

	store, err := storage.NewBoltStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	managerConn, err := grpc.NewClient(cfg.Manager.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial manager: %w", err)
	}
	defer managerConn.Close()
	managerClient := manager.NewGRPCClient(managerConn)

	if len(cfg.Scheduler.Addrs) == 0 {
		return fmt.Errorf("scheduler.addrs must list at least one endpoint")
	}
	schedulerConn, err := grpc.NewClient(cfg.Scheduler.Addrs[0], grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial scheduler: %w", err)
	}
	defer schedulerConn.Close()
	schedulerClient := scheduler.NewGRPCClient(schedulerConn)
	schedulerClient.Ring().SetEndpoints(cfg.Scheduler.Addrs)

	identity := model.HostIdentity{
		HostID:       idGen.HostID(),
		Hostname:     cfg.Host.Hostname,
		IP:           cfg.Host.IP,
		IDC:          cfg.Host.IDC,
		Location:     cfg.Host.Location,
		Port:         cfg.Host.Port,
		DownloadPort: cfg.Host.DownloadPort,
	}
	if identity.Hostname == "" {
		identity.Hostname = telemetry.Hostname()
	}
	if hostInfo, err := host.Info(); err == nil {
		identity.OS = hostInfo.OS
		identity.PlatformFamily = hostInfo.PlatformFamily
		identity.KernelVersion = hostInfo.KernelVersion
	} else {
		logger.Warn().Err(err).Msg("host info unavailable, leaving platform fields empty")
	}
	identity.Type = seedPeerHostType(cfg.SeedPeer)

	shutdown := lifecycle.NewSignal()
	drain := lifecycle.NewDrainBarrier()

	managerAnnouncer := &announcer.ManagerAnnouncer{
		Config: announcer.SeedPeerConfig{
			Enable:       cfg.SeedPeer.Enable,
			SourceType:   manager.SourceTypeSeedPeerSource,
			Hostname:     identity.Hostname,
			Type:         cfg.SeedPeer.Kind,
			IDC:          identity.IDC,
			Location:     identity.Location,
			IP:           identity.IP,
			Port:         identity.Port,
			DownloadPort: identity.DownloadPort,
			ClusterID:    cfg.SeedPeer.ClusterID,
		},
		Client:   managerClient,
		Shutdown: shutdown,
		Drain:    drain,
	}

	collector := telemetry.NewCollector(cfg.Storage.Dir)

	schedulerAnnouncer, err := announcer.NewSchedulerAnnouncer(ctx, announcer.SchedulerAnnouncer{
		Identity:         identity,
		Client:           schedulerClient,
		Shutdown:         shutdown,
		Drain:            drain,
		IDGen:            idGen,
		Store:            store,
		Telemetry:        collector,
		AnnounceInterval: cfg.Scheduler.AnnounceInterval.Duration,
		TaskTTL:          cfg.GC.TaskTTL.Duration,
	})
	if err != nil {
		return fmt.Errorf("scheduler announcer startup: %w", err)
	}

	healthServer := &health.Server{Addr: cfg.Health.Addr, Shutdown: shutdown}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info().Msg("shutdown signal received")
		shutdown.Fire()
	}()

	managerErr := make(chan error, 1)
	go func() {
		err := managerAnnouncer.Run(ctx)
		if err != nil {
			shutdown.Fire()
		}
		managerErr <- err
	}()
	go schedulerAnnouncer.Run(ctx)

	if err := healthServer.ListenAndServe(ctx); err != nil {
		logger.Error().Err(err).Msg("health server stopped")
	}

	drain.Wait()
	if err := <-managerErr; err != nil {
		return fmt.Errorf("manager announcer: %w", err)
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// seedPeerHostType derives the host_type advertised to the scheduler from
// seed_peer config, per spec.md §4.3: a disabled or unrecognized kind
// reports Normal, never silently defaulting to a seed type.
func seedPeerHostType(cfg config.SeedPeerConfig) model.HostType {
	if !cfg.Enable {
		return model.HostTypeNormal
	}
	switch strings.ToLower(cfg.Kind) {
	case "super_seed", "super":
		return model.HostTypeSuperSeed
	case "strong_seed", "strong":
		return model.HostTypeStrongSeed
	case "weak_seed", "weak":
		return model.HostTypeWeakSeed
	default:
		return model.HostTypeNormal
	}
}
