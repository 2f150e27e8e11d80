package snowflakeid

import (
	"fmt"
	"time"
)

// Components are the fields packed into an id
type Components struct {
	// UnixMilli is the id time in milliseconds since the unix epoch, the
	// CustomEpoch is already added back.
	UnixMilli    uint64
	DatacenterID uint64
	MachineID    uint64
	Sequence     uint64
}

// Decode splits id into its fields. Every uint64 decodes to something, it is
// for the caller to know whether the id came from a generator at all.
//
// The unused top bit is not masked off: if set it lands in the time field, so
// that Encode(Decode(id)) == id for every id.
func Decode(id uint64) Components {
	return Components{
		UnixMilli:    (id >> TimeShift) + CustomEpoch,
		DatacenterID: (id >> DatacenterShift) & MaxDatacenterID,
		MachineID:    (id >> MachineShift) & MaxMachineID,
		Sequence:     id & MaxSequence,
	}
}

// Encode packs the components. Node ids and sequence are masked to their
// field widths, the time is expected to be at or after CustomEpoch.
func (c Components) Encode() uint64 {
	return (c.UnixMilli-CustomEpoch)<<TimeShift |
		(c.DatacenterID&MaxDatacenterID)<<DatacenterShift |
		(c.MachineID&MaxMachineID)<<MachineShift |
		c.Sequence&MaxSequence
}

func (c Components) Time() time.Time {
	return time.UnixMilli(int64(c.UnixMilli)).UTC()
}

func (c Components) Identity() Identity {
	return Identity{DatacenterID: c.DatacenterID, MachineID: c.MachineID}
}

func (c Components) String() string {
	return fmt.Sprintf("ts = %d, dc = %d, mc = %d, seq = %d", c.UnixMilli, c.DatacenterID, c.MachineID, c.Sequence)
}

// IDUnixMilli returns the id time in milliseconds since the unix epoch
func IDUnixMilli(id uint64) uint64 {
	return (id >> TimeShift) + CustomEpoch
}

func IDTime(id uint64) time.Time {
	return time.UnixMilli(int64(IDUnixMilli(id))).UTC()
}

// IDMilliSplit splits the milliseconds from the node and sequence uniqueness
// data without loss
//
// Returns
//
//	milliseconds since CustomEpoch
//	the datacenter, machine and sequence, guaranteed to be < 2^22
func IDMilliSplit(id uint64) (uint64, uint32) {
	return id >> TimeShift, uint32(id & (1<<TimeShift - 1))
}

// IDFromTime returns the smallest id any generator can issue in the
// millisecond of t. Ids from that millisecond onwards compare >= the result,
// which makes it suitable as the lower bound of a time range query.
func IDFromTime(t time.Time) (uint64, error) {
	ms := t.UnixMilli()
	if ms < CustomEpoch {
		return 0, fmt.Errorf("%s is before the id epoch: %w", t.UTC().Format(time.RFC3339Nano), ErrTimeRange)
	}
	offset := uint64(ms - CustomEpoch)
	if offset > MaxTimeOffset {
		return 0, fmt.Errorf("%s is beyond the %d bit id time range: %w", t.UTC().Format(time.RFC3339Nano), TimeBits, ErrTimeRange)
	}
	return offset << TimeShift, nil
}
