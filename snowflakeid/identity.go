package snowflakeid

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Identity is the (datacenter, machine) pair that makes one generator's ids
// distinct from every other generator's.
type Identity struct {
	DatacenterID uint64
	MachineID    uint64
}

func (id Identity) Validate() error {
	if id.DatacenterID > MaxDatacenterID {
		return fmt.Errorf("datacenter id %d (max %d): %w", id.DatacenterID, MaxDatacenterID, ErrDatacenterIDRange)
	}
	if id.MachineID > MaxMachineID {
		return fmt.Errorf("machine id %d (max %d): %w", id.MachineID, MaxMachineID, ErrMachineIDRange)
	}
	return nil
}

// WorkerID returns the identity as the single 10 bit number it occupies in the
// id, datacenter in the high bits.
func (id Identity) WorkerID() uint64 {
	return (id.DatacenterID&MaxDatacenterID)<<MachineBits | id.MachineID&MaxMachineID
}

func IdentityFromWorkerID(workerID uint64) Identity {
	return Identity{
		DatacenterID: (workerID >> MachineBits) & MaxDatacenterID,
		MachineID:    workerID & MaxMachineID,
	}
}

// IdentityFromPodIP ensures two pods can't generate the same ids by selecting
// the identity bits from the pod's private ip address. The host part of the
// workerCIDR selects which low order address bits are used, it must cover at
// least 2 and at most 1024 addresses. Pods whose addresses agree in those
// bits collide, so the CIDR should match the block pods are allocated from.
func IdentityFromPodIP(workerCIDR, podIP string) (Identity, error) {

	hostMask, err := parseHostMask(workerCIDR)
	if err != nil {
		return Identity{}, err
	}
	ip, err := parseIP(podIP)
	if err != nil {
		return Identity{}, err
	}

	return IdentityFromWorkerID(uint64(binary.BigEndian.Uint32(ip) & hostMask)), nil
}

// IdentityFromName derives an identity from a stable node name, such as a
// kubernetes pod or host name. This is best effort: with 1024 identities
// available distinct names collide with birthday paradox odds, so prefer
// explicit assignment where strict uniqueness matters.
func IdentityFromName(name string) Identity {
	return IdentityFromWorkerID(xxhash.Sum64String(name) & MaxWorkerID)
}

// IdentityFromUUID derives an identity from an instance uuid, typically one
// issued by a deployment tool. The collision caveats of IdentityFromName apply.
func IdentityFromUUID(u uuid.UUID) Identity {
	return IdentityFromWorkerID(xxhash.Sum64(u[:]) & MaxWorkerID)
}

// parseHostMask parses the CIDR which configures how many bits to take from
// the pod private ip address. It errors if the configuration exceeds the bits
// available for the identity.
func parseHostMask(workerCIDR string) (uint32, error) {
	_, ipNet, err := net.ParseCIDR(workerCIDR)
	if err != nil {
		return 0, fmt.Errorf("%s - issue parsing CIDR: %v: %w", workerCIDR, err, ErrBadWorkerCIDR)
	}
	if len(ipNet.Mask) != net.IPv4len {
		return 0, fmt.Errorf("%s - only ipv4 is supported: %w", workerCIDR, ErrBadWorkerCIDR)
	}

	hostMask := ^binary.BigEndian.Uint32(ipNet.Mask)
	hostBits := bits.OnesCount32(hostMask)
	if hostBits > WorkerBits {
		return 0, fmt.Errorf("%s - allows too many ips: %w", workerCIDR, ErrMaskRange)
	}
	if hostBits == 0 {
		return 0, fmt.Errorf("%s - allows too few ips: %w", workerCIDR, ErrMaskRange)
	}
	return hostMask, nil
}

// parseIP parses a pod ip address and requires that it is allocated from a
// known private ip range.
func parseIP(podIP string) (net.IP, error) {
	ip := net.ParseIP(podIP)
	if ip == nil {
		return nil, fmt.Errorf("%s - issue parsing IP: %w", podIP, ErrBadPodIP)
	}
	if !ip.IsPrivate() {
		return nil, fmt.Errorf("%s - is not a private ip: %w", podIP, ErrBadPodIP)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%s - only ipv4 is supported: %w", podIP, ErrBadPodIP)
	}
	return ip4, nil
}
