package snowflakeid

const (
	// CustomEpoch is the reference zero time of the timestamp field, in
	// milliseconds since the unix epoch: 2010-11-04T01:42:54.657Z. It must not
	// change, ids from other implementations of this layout depend on it.
	CustomEpoch = 1288834974657

	SequenceBits   = 12
	MachineBits    = 5
	DatacenterBits = 5

	// TimeBits gives ~69 years of milliseconds from CustomEpoch. The remaining
	// top bit is never set by the generator.
	TimeBits = 41

	// WorkerBits is the combined width of the node identity
	WorkerBits = DatacenterBits + MachineBits

	MachineShift    = SequenceBits
	DatacenterShift = MachineShift + MachineBits
	TimeShift       = DatacenterShift + DatacenterBits

	MaxSequence     uint64 = (1 << SequenceBits) - 1
	MaxMachineID    uint64 = (1 << MachineBits) - 1
	MaxDatacenterID uint64 = (1 << DatacenterBits) - 1
	MaxWorkerID     uint64 = (1 << WorkerBits) - 1
	MaxTimeOffset   uint64 = (1 << TimeBits) - 1

	TimeMask uint64 = MaxTimeOffset << TimeShift
)
