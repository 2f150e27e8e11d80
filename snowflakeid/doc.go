// Package snowflakeid generates 64 bit, time ordered, unique ids without any
// coordination between the nodes that generate them.
//
// Each id packs, from the most significant bit down:
//
//	 1 bit  unused, always zero
//	41 bits milliseconds since CustomEpoch
//	 5 bits datacenter id
//	 5 bits machine id
//	12 bits sequence, reset every millisecond
//
// The following properties hold for the ids of a single Generator:
//
//   - No id is produced twice, regardless of how many goroutines share the
//     generator.
//   - Ids are strictly increasing in commit order. If the wall clock steps
//     backwards the generator stalls until it catches up rather than issue an
//     id that sorts before one already issued.
//   - At most 4096 ids are issued per millisecond. When the sequence is
//     exhausted the generator waits for the next millisecond.
//
// Uniqueness between nodes depends entirely on each generator being given a
// distinct (datacenter, machine) pair. Assigning those is the job of the
// deployment; IdentityFromPodIP, IdentityFromName and IdentityFromUUID are
// provided as optional sources.
//
// Decode reverses the packing for any 64 bit value.
package snowflakeid
