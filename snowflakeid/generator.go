package snowflakeid

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Generator issues ids for a single (datacenter, machine) identity. It is safe
// for concurrent use and must not be copied after first use.
type Generator struct {
	datacenterID uint64
	machineID    uint64
	// maskedNodeID is the datacenter and machine ids shifted into their
	// positions in the id
	maskedNodeID uint64

	clock Clock
	log   logger.Logger

	// state holds the last committed timestamp offset and sequence as
	//
	//	(offset + 1) << SequenceBits | sequence
	//
	// The bias keeps zero free to mean nothing has been issued, so the first
	// id of any millisecond, the epoch included, has sequence zero. Both
	// halves are always read and replaced together by a single atomic
	// operation.
	//
	// ***********************************************************************
	// We strictly guarantee that `state` only increases for all consumers.
	// ***********************************************************************
	state atomic.Uint64
}

// New returns a generator for the given identity. Either id exceeding 31 is a
// configuration error and no generator is returned.
func New(datacenterID, machineID uint64, opts ...Option) (*Generator, error) {
	id := Identity{DatacenterID: datacenterID, MachineID: machineID}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o := Options{Clock: WallClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Clock == nil {
		o.Clock = WallClock()
	}

	g := &Generator{
		datacenterID: datacenterID,
		machineID:    machineID,
		maskedNodeID: datacenterID<<DatacenterShift | machineID<<MachineShift,
		clock:        o.Clock,
		log:          o.Log,
	}
	g.state.Store(0)
	return g, nil
}

// MustNew is New for callers that treat a bad identity as fatal.
func MustNew(datacenterID, machineID uint64, opts ...Option) *Generator {
	g, err := New(datacenterID, machineID, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// NewFromConfig resolves the node identity from cfg and returns a generator
// for it.
func NewFromConfig(cfg Config, opts ...Option) (*Generator, error) {
	id, err := cfg.Identity()
	if err != nil {
		return nil, err
	}
	return New(id.DatacenterID, id.MachineID, opts...)
}

func (g *Generator) DatacenterID() uint64 { return g.datacenterID }
func (g *Generator) MachineID() uint64    { return g.machineID }

func (g *Generator) Identity() Identity {
	return Identity{DatacenterID: g.datacenterID, MachineID: g.machineID}
}

// NextID returns the next id in a time ordered, unique and strictly
// increasing series.
//
// If the clock has stepped behind the last issued id, or 4096 ids have
// already been issued in the current millisecond, NextID polls the clock until
// it has moved on. Those stalls are not errors and are normally resolved
// within a millisecond. The only error is ErrClockError, when the clock can't
// be read or its reading can't be represented in an id.
func (g *Generator) NextID() (uint64, error) {

	// We do a read/modify/write on the state variable. We read the last
	// committed (time, sequence) pair, decide the next pair, and only get to
	// complete our update if the original value has not changed under our
	// feet. If it has, another caller committed first and our decision is
	// stale, so we start again with a fresh clock reading. As time and
	// sequence share one word there is no way for a caller to observe, or
	// commit, one without the other.
	for {
		now, err := g.now()
		if err != nil {
			return 0, err
		}

		last := g.state.Load()
		lastTime := last >> SequenceBits
		lastSeq := last & MaxSequence

		// Biased as in state
		now++

		var next uint64

		switch {
		case now > lastTime:
			// Time has advanced past the millisecond of the last id. Shifting
			// the new time into place resets the sequence to zero.
			next = now << SequenceBits

		case now < lastTime:
			// The clock stepped backwards. Issuing anything now would sort
			// before ids already issued, so wait for it to catch up.
			if g.log != nil {
				g.log.Infof("clock regression: now=%d last=%d, stalling %dms", now-1, lastTime-1, lastTime-now)
			}
			if err = g.waitFor(lastTime-1, false); err != nil {
				return 0, err
			}
			continue

		case lastSeq == MaxSequence:
			// The sequence is exhausted for this millisecond. Wait for the
			// next one and go round again; the fresh reading is strictly
			// greater than lastTime so the id is committed with the new time
			// and sequence zero.
			if g.log != nil {
				g.log.Debugf("sequence exhausted: ms=%d", lastTime-1)
			}
			if err = g.waitFor(lastTime-1, true); err != nil {
				return 0, err
			}
			continue

		default:
			// Same millisecond, sequence not exhausted. The sequence is in the
			// lowest order bits, simple addition is all we need.
			next = last + 1
		}

		if g.state.CompareAndSwap(last, next) {
			return g.encode(next), nil
		}
	}
}

// MustNextID is NextID for callers that treat an unusable clock as fatal.
func (g *Generator) MustNextID() uint64 {
	id, err := g.NextID()
	if err != nil {
		panic(err)
	}
	return id
}

func (g *Generator) encode(state uint64) uint64 {
	offset := state>>SequenceBits - 1
	return offset<<TimeShift | g.maskedNodeID | state&MaxSequence
}

// now returns the current clock reading as an offset from CustomEpoch
func (g *Generator) now() (uint64, error) {
	ms, err := g.clock.UnixMilli()
	if err != nil {
		return 0, fmt.Errorf("reading clock: %w: %w", err, ErrClockError)
	}
	if ms < CustomEpoch {
		return 0, fmt.Errorf("clock reading %d is before the id epoch %d: %w", ms, CustomEpoch, ErrClockError)
	}
	offset := uint64(ms - CustomEpoch)
	if offset > MaxTimeOffset {
		return 0, fmt.Errorf("clock reading %d is beyond the %d bit id time range: %w", ms, TimeBits, ErrClockError)
	}
	return offset, nil
}

// waitFor polls the clock until it reaches last, or passes it when strict is
// set.
func (g *Generator) waitFor(last uint64, strict bool) error {
	for {
		now, err := g.now()
		if err != nil {
			return err
		}
		if now > last || (!strict && now == last) {
			return nil
		}
		runtime.Gosched()
	}
}
