package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-snowflakeid/snowflakeid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ErrDuplicateID = errors.New("the generator issued a duplicate id")

type app struct {
	opts options
	log  logger.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "snowflake",
		Short:        "Issue and inspect snowflake ids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.New(a.opts.logLevel)
			a.log = logger.Sugar.WithServiceName("snowflake")
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.datacenterID, "datacenter-id", a.opts.datacenterID, "Datacenter id 0-31 (env "+envDatacenterID+")")
	f.StringVar(&a.opts.machineID, "machine-id", a.opts.machineID, "Machine id 0-31 (env "+envMachineID+")")
	f.StringVar(&a.opts.workerCIDR, "worker-cidr", a.opts.workerCIDR, "CIDR selecting identity bits from the pod ip (env "+envWorkerCIDR+")")
	f.StringVar(&a.opts.podIP, "pod-ip", a.opts.podIP, "Private pod ip (env "+envPodIP+")")
	f.StringVar(&a.opts.instanceUUID, "instance-uuid", a.opts.instanceUUID, "Instance uuid hashed to an identity (env "+envInstanceUUID+")")
	f.StringVar(&a.opts.nodeName, "node-name", a.opts.nodeName, "Node name hashed to an identity (env "+envNodeName+")")
	f.StringVar(&a.opts.logLevel, "log-level", a.opts.logLevel, "Log level: DEBUG|INFO|NOOP (env "+envLogLevel+")")

	root.AddCommand(a.nextCmd(), a.decodeCmd(), a.benchCmd())
	return root
}

// close flushes the logger. The logger is created when the command tree starts
// running, so there is nothing to flush if flag parsing failed first.
func (a *app) close() {
	if a.log == nil {
		return
	}
	logger.OnExit()
	a.log = nil
}

func (a *app) generator() (*snowflakeid.Generator, error) {
	cfg, err := a.opts.config()
	if err != nil {
		return nil, err
	}
	g, err := snowflakeid.NewFromConfig(cfg, snowflakeid.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.log.Debugf("generator identity: dc=%d mc=%d", g.DatacenterID(), g.MachineID())
	return g, nil
}

func (a *app) nextCmd() *cobra.Command {
	var count int
	var asHex bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print new ids with their decoded fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				id, err := g.NextID()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "id = %s, %s\n", formatID(id, asHex), snowflakeid.Decode(id))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of ids to issue")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Print ids as 0x prefixed hex")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>...",
		Short: "Decode decimal or 0x hex ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				id, err := snowflakeid.ParseID(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				c := snowflakeid.Decode(id)
				fmt.Fprintf(out, "id = %d, %s, time = %s\n", id, c, c.Time().Format(time.RFC3339Nano))
			}
			return nil
		},
	}
}

func (a *app) benchCmd() *cobra.Command {
	var workers, perWorker int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Issue ids from concurrent goroutines and check they are unique",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 || perWorker < 1 {
				return fmt.Errorf("--workers and --per-worker must be positive")
			}
			g, err := a.generator()
			if err != nil {
				return err
			}

			start := time.Now()
			results := make([][]uint64, workers)
			var eg errgroup.Group
			for w := 0; w < workers; w++ {
				eg.Go(func() error {
					ids := make([]uint64, perWorker)
					for i := range ids {
						id, err := g.NextID()
						if err != nil {
							return err
						}
						ids[i] = id
					}
					results[w] = ids
					return nil
				})
			}
			if err = eg.Wait(); err != nil {
				return err
			}
			elapsed := time.Since(start)

			seen := make(map[uint64]struct{}, workers*perWorker)
			duplicates := 0
			for _, ids := range results {
				for _, id := range ids {
					if _, ok := seen[id]; ok {
						duplicates++
					}
					seen[id] = struct{}{}
				}
			}

			total := workers * perWorker
			fmt.Fprintf(cmd.OutOrStdout(), "ids = %d, unique = %d, duplicates = %d, elapsed = %s, rate = %.0f/s\n",
				total, len(seen), duplicates, elapsed, float64(total)/elapsed.Seconds())
			if duplicates != 0 {
				return fmt.Errorf("%d duplicates: %w", duplicates, ErrDuplicateID)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "Concurrent goroutines")
	cmd.Flags().IntVar(&perWorker, "per-worker", 2000, "Ids issued by each goroutine")
	return cmd
}

func formatID(id uint64, asHex bool) string {
	if asHex {
		return "0x" + snowflakeid.IDToHex(id)
	}
	return fmt.Sprintf("%d", id)
}
