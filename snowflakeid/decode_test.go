package snowflakeid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		id   uint64
		want Components
	}{
		{"zero", 0, Components{UnixMilli: CustomEpoch}},
		{
			"hand built",
			0<<TimeShift | 5<<DatacenterShift | 7<<MachineShift | 42,
			Components{UnixMilli: CustomEpoch, DatacenterID: 5, MachineID: 7, Sequence: 42},
		},
		{
			"field boundaries",
			1<<TimeShift | 1<<DatacenterShift | 1<<MachineShift | 1,
			Components{UnixMilli: CustomEpoch + 1, DatacenterID: 1, MachineID: 1, Sequence: 1},
		},
		{
			"all generator bits set",
			(1 << 63) - 1,
			Components{UnixMilli: CustomEpoch + MaxTimeOffset, DatacenterID: 31, MachineID: 31, Sequence: 4095},
		},
		{
			// not something a generator issues, but it still decodes
			"unused bit set",
			1 << 63,
			Components{UnixMilli: CustomEpoch + (1 << TimeBits)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.id)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.Encode(), "Encode must invert Decode")
		})
	}
}

func TestComponentsEncode(t *testing.T) {
	c := Components{UnixMilli: CustomEpoch + 1000, DatacenterID: 17, MachineID: 3, Sequence: 4000}
	id := c.Encode()
	assert.Equal(t, uint64(1000)<<22|uint64(17)<<17|uint64(3)<<12|4000, id)
	assert.Equal(t, c, Decode(id))

	// Out of range node fields are masked rather than bleeding into their
	// neighbours.
	over := Components{UnixMilli: CustomEpoch, DatacenterID: 32, MachineID: 33, Sequence: 4096}
	assert.Equal(t, uint64(1)<<MachineShift, over.Encode())
}

func TestComponentsTime(t *testing.T) {
	c := Decode(0)
	want := time.Date(2010, time.November, 4, 1, 42, 54, 657*int(time.Millisecond), time.UTC)
	assert.True(t, want.Equal(c.Time()), "got %s", c.Time())
	assert.True(t, want.Equal(IDTime(0)))
	assert.Equal(t, uint64(CustomEpoch), IDUnixMilli(0))
	assert.Equal(t, Identity{DatacenterID: 5, MachineID: 7}, Decode(5<<DatacenterShift|7<<MachineShift).Identity())
	assert.Equal(t, "ts = 1288834974657, dc = 5, mc = 7, seq = 42", Decode(5<<DatacenterShift|7<<MachineShift|42).String())
}

func TestIDMilliSplit(t *testing.T) {
	type args struct {
		id uint64
	}
	tests := []struct {
		name  string
		args  args
		want  uint64
		want1 uint32
	}{
		{"fully f'd", args{(1 << 64) - 1}, (1 << 42) - 1, 0x3fffff},
		{"1 bits", args{(1 << 22) | (1 << 12) | 1}, 1, 4097},
		{"node bits only", args{31<<DatacenterShift | 31<<MachineShift}, 0, 0x3ff000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, got1 := IDMilliSplit(tt.args.id)
			if got != tt.want {
				t.Errorf("IDMilliSplit() got = %x, want %x", got, tt.want)
			}
			if got1 != tt.want1 {
				t.Errorf("IDMilliSplit() got1 = %x, want %x", got1, tt.want1)
			}
		})
	}
}

func TestIDFromTime(t *testing.T) {
	tests := []struct {
		name    string
		t       time.Time
		want    uint64
		wantErr error
	}{
		{"epoch", time.UnixMilli(CustomEpoch), 0, nil},
		{"contemporary", time.Unix(1715184784, 0), uint64(1715184784000-CustomEpoch) << TimeShift, nil},
		{"sub millisecond is truncated", time.UnixMilli(CustomEpoch + 9).Add(999 * time.Microsecond), 9 << TimeShift, nil},
		{"before epoch", time.UnixMilli(CustomEpoch - 1), 0, ErrTimeRange},
		{"past the time field", time.UnixMilli(CustomEpoch + int64(MaxTimeOffset) + 1), 0, ErrTimeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDFromTime(tt.t)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIDFromTime_BoundsGeneratedIDs(t *testing.T) {
	g := MustNew(31, 31)
	id := g.MustNextID()

	lower, err := IDFromTime(IDTime(id))
	require.NoError(t, err)
	assert.LessOrEqual(t, lower, id)

	next, err := IDFromTime(IDTime(id).Add(time.Millisecond))
	require.NoError(t, err)
	assert.Greater(t, next, id)
}
