package consensus

import (
	"encoding/hex"
	"testing"
)

func TestCompactSizeEncodeDecode(t *testing.T) {
	cases := []struct {
		name string
		val  uint64
		hex  string
	}{
		{"zero", 0, "00"},
		{"max_u8_minimal", 252, "fc"},
		{"u16_boundary", 253, "fdfd00"},
		{"u16_max", 65535, "fdffff"},
		{"u32_boundary", 65536, "fe00000100"},
		{"u32_mid", 0x12345678, "fe78563412"},
		{"u64_boundary", 0x1_0000_0000, "ff0000000001000000"},
		{"u64_high", 0xffff_ffff_ffff_ffff, "ffffffffffffffffff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := AppendCompactSize(nil, tc.val)
			if hex.EncodeToString(enc) != tc.hex {
				t.Fatalf("encode mismatch: got %x want %s", enc, tc.hex)
			}
			off := 0
			dec, err := readCompactSize(enc, &off)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if off != len(enc) {
				t.Fatalf("decode consumed %d bytes, want %d", off, len(enc))
			}
			if dec != tc.val {
				t.Fatalf("decode value mismatch: got %d want %d", dec, tc.val)
			}
		})
	}
}

func TestCompactSizeRejectsNonMinimal(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
	}{
		{name: "0xfd_for_small", b: []byte{0xfd, 0xfc, 0x00}},                       // 252
		{name: "0xfe_for_u16", b: []byte{0xfe, 0xff, 0xff, 0x00, 0x00}},             // 65535
		{name: "0xff_for_u32", b: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0}}, // 0xffffffff
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeCompactSize(tc.b)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := CodeOf(err); got != TX_ERR_PARSE {
				t.Fatalf("code=%s, want %s", got, TX_ERR_PARSE)
			}
		})
	}
}

func TestCompactSizeRejectsTruncated(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
	}{
		{name: "empty", b: []byte{}},
		{name: "tag_only_fd", b: []byte{0xfd}},
		{name: "tag_only_fe", b: []byte{0xfe}},
		{name: "tag_only_ff", b: []byte{0xff}},
		{name: "fd_one_byte", b: []byte{0xfd, 0x00}},
		{name: "fe_three_bytes", b: []byte{0xfe, 0x00, 0x00, 0x00}},
		{name: "ff_seven_bytes", b: []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeCompactSize(tc.b)
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
