package snowflakeid

import (
	"fmt"

	"github.com/google/uuid"
)

// Config describes where a node's identity comes from. The first source that
// is configured wins, in field order.
type Config struct {
	// DatacenterID and MachineID assign the identity explicitly. Both or
	// neither must be set.
	DatacenterID *uint64
	MachineID    *uint64

	// WorkerCIDR and PodIP select the identity from the bits of the workload
	// private ip address, see IdentityFromPodIP. PodIP is normally obtained
	// via the Kubernetes downward API.
	WorkerCIDR string
	PodIP      string

	// InstanceID is hashed to an identity, see IdentityFromUUID
	InstanceID uuid.UUID

	// NodeName is hashed to an identity, see IdentityFromName
	NodeName string
}

// Identity resolves the configured identity
func (cfg Config) Identity() (Identity, error) {

	switch {
	case cfg.DatacenterID != nil && cfg.MachineID != nil:
		id := Identity{DatacenterID: *cfg.DatacenterID, MachineID: *cfg.MachineID}
		return id, id.Validate()

	case cfg.DatacenterID != nil || cfg.MachineID != nil:
		return Identity{}, ErrPartialIdentity

	case cfg.WorkerCIDR != "" || cfg.PodIP != "":
		id, err := IdentityFromPodIP(cfg.WorkerCIDR, cfg.PodIP)
		if err != nil {
			return Identity{}, fmt.Errorf("identity from pod ip: %w", err)
		}
		return id, nil

	case cfg.InstanceID != uuid.Nil:
		return IdentityFromUUID(cfg.InstanceID), nil

	case cfg.NodeName != "":
		return IdentityFromName(cfg.NodeName), nil
	}
	return Identity{}, ErrNoIdentity
}
