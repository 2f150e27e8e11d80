package snowflakeid

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
)

func TestIDBytes(t *testing.T) {
	tests := []struct {
		name string
		id   uint64
		want []byte
	}{
		// check the expected locations for the serialization given the big endian encoding
		{"one", 1, []byte{0, 0, 0, 0, 0, 0, 0, 1}},
		// Here, 1 shifted left 62 bit positions creates a low address byte of
		// 64 in the serialized big endian representation: the top of the time
		// field.
		{"top time bit", 1 << 62, []byte{64, 0, 0, 0, 0, 0, 0, 0}},
		{"sequence", 4095, []byte{0, 0, 0, 0, 0, 0, 0x0f, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, IDBytes(tt.id), tt.want)

			got, err := ParseIDBytes(tt.want)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.id)
		})
	}
}

func TestIDBytesOrdering(t *testing.T) {
	g := MustNew(9, 9)
	prev := IDBytes(g.MustNextID())
	for i := 0; i < 5000; i++ {
		cur := IDBytes(g.MustNextID())
		assert.Assert(t, bytes.Compare(prev, cur) < 0, "byte order must follow id order: %x !< %x", prev, cur)
		prev = cur
	}
}

func TestParseIDBytes(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"too short", []byte{0, 1, 0, 0, 0, 0, 0}},
		{"too long", []byte{1, 0, 0, 0, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIDBytes(tt.b)
			assert.ErrorIs(t, err, ErrIDBytesLength)
		})
	}
}

func TestIDHex(t *testing.T) {
	id := uint64(0x0123456789abcdef)
	assert.Equal(t, IDToHex(id), "0123456789abcdef")

	got, err := ParseIDHex("0123456789abcdef")
	assert.NilError(t, err)
	assert.Equal(t, got, id)

	got, err = ParseIDHex("0x0123456789abcdef")
	assert.NilError(t, err)
	assert.Equal(t, got, id)

	_, err = ParseIDHex("0x0123")
	assert.ErrorIs(t, err, ErrIDBytesLength)

	_, err = ParseIDHex("not hex at all!!")
	assert.Assert(t, err != nil)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		want    uint64
		wantErr bool
	}{
		{"decimal", "1541815603606036480", 1541815603606036480, false},
		{"decimal with whitespace", " 42\n", 42, false},
		{"hex", "0x1565f00be6c01000", 0x1565f00be6c01000, false},
		{"upper case hex", "0X1565F00BE6C01000", 0x1565f00be6c01000, false},
		{"upper case prefix only", "0X1565f00be6c01000", 0x1565f00be6c01000, false},
		{"negative", "-1", 0, true},
		{"overflow", "18446744073709551616", 0, true},
		{"short hex", "0xff", 0, true},
		{"garbage", "snowflake", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.s)
			if tt.wantErr {
				assert.Assert(t, err != nil)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}
