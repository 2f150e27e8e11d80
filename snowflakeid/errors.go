package snowflakeid

import "errors"

var (
	ErrDatacenterIDRange = errors.New("the datacenter id does not fit in its 5 bit field")
	ErrMachineIDRange    = errors.New("the machine id does not fit in its 5 bit field")
	ErrNoIdentity        = errors.New("no node identity was configured")
	ErrPartialIdentity   = errors.New("explicit identities require both the datacenter and the machine id")
)

var (
	// ErrClockError is returned by NextID when the clock can not produce a
	// reading that fits the id layout. It is not retried.
	ErrClockError = errors.New("the reading from system time doesn't make any realistic sense")
	ErrTimeRange  = errors.New("the time is outside the range representable by an id")
)

var (
	ErrIDBytesLength = errors.New("an id must be serialized as exactly 8 bytes")
	ErrBadWorkerCIDR = errors.New("provided worker CIDR is invalid")
	ErrBadPodIP      = errors.New("pod ip invalid")
	ErrMaskRange     = errors.New("the specified CIDR mask allows for too many or too few private ip addresses")
)
