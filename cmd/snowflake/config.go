package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/forestrie/go-snowflakeid/snowflakeid"
	"github.com/google/uuid"
)

const (
	envDatacenterID = "SNOWFLAKE_DATACENTER_ID"
	envMachineID    = "SNOWFLAKE_MACHINE_ID"
	envWorkerCIDR   = "SNOWFLAKE_WORKER_CIDR"
	envPodIP        = "POD_IP"
	envNodeName     = "SNOWFLAKE_NODE_NAME"
	envInstanceUUID = "SNOWFLAKE_INSTANCE_UUID"
	envLogLevel     = "SNOWFLAKE_LOG_LEVEL"
)

var ErrBadIdentityValue = errors.New("datacenter and machine ids must be unsigned integers")

// options holds the identity and logging flags. Flag defaults are read from
// the environment, so an explicit flag overrides the environment.
type options struct {
	// Kept as text so that a malformed value is reported by config rather
	// than mistaken for an unset one. Empty means unset.
	datacenterID string
	machineID    string

	workerCIDR   string
	podIP        string
	nodeName     string
	instanceUUID string

	logLevel string
}

func optionsFromEnv() options {
	return options{
		datacenterID: os.Getenv(envDatacenterID),
		machineID:    os.Getenv(envMachineID),
		workerCIDR:   os.Getenv(envWorkerCIDR),
		podIP:        os.Getenv(envPodIP),
		nodeName:     os.Getenv(envNodeName),
		instanceUUID: os.Getenv(envInstanceUUID),
		logLevel:     envString(envLogLevel, "INFO"),
	}
}

// config converts the options to the generator configuration
func (o options) config() (snowflakeid.Config, error) {
	cfg := snowflakeid.Config{
		WorkerCIDR: o.workerCIDR,
		PodIP:      o.podIP,
		NodeName:   o.nodeName,
	}
	var err error
	if cfg.DatacenterID, err = parseID("datacenter id", o.datacenterID); err != nil {
		return snowflakeid.Config{}, err
	}
	if cfg.MachineID, err = parseID("machine id", o.machineID); err != nil {
		return snowflakeid.Config{}, err
	}
	if o.instanceUUID != "" {
		u, err := uuid.Parse(o.instanceUUID)
		if err != nil {
			return snowflakeid.Config{}, fmt.Errorf("instance uuid %q: %w", o.instanceUUID, err)
		}
		cfg.InstanceID = u
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseID returns nil for an unset id. Range checking is left to the
// generator, which reports it with the range sentinels.
func parseID(name, v string) (*uint64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w: %w", name, v, err, ErrBadIdentityValue)
	}
	return &n, nil
}
