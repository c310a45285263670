package consensus

import (
	"bytes"
	"testing"
)

// minimalTxBytes builds a legacy single-input single-output transaction.
func minimalTxBytes() []byte {
	var b []byte
	b = AppendU32le(b, 1) // version
	b = AppendCompactSize(b, 1)
	b = append(b, make([]byte, 32)...) // prev txid
	b = AppendU32le(b, 0xffffffff)     // prev vout
	b = AppendCompactSize(b, 4)
	b = append(b, 0x01, 0x02, 0x03, 0x04) // script_sig
	b = AppendU32le(b, 0xffffffff)        // sequence
	b = AppendCompactSize(b, 1)
	b = AppendU64le(b, 50_0000_0000) // value
	script := P2PKHScript([]byte{0x02, 0x03})
	b = AppendCompactSize(b, uint64(len(script)))
	b = append(b, script...)
	b = AppendU32le(b, 0) // locktime
	return b
}

// segwitTxBytes builds a BIP-144 transaction with one witness input.
func segwitTxBytes() []byte {
	var b []byte
	b = AppendU32le(b, 2) // version
	b = append(b, segwitMarker, segwitFlag)
	b = AppendCompactSize(b, 1)
	prev := testTxid(9)
	b = append(b, prev[:]...)
	b = AppendU32le(b, 1)       // prev vout
	b = AppendCompactSize(b, 0) // empty script_sig
	b = AppendU32le(b, 0xfffffffe)
	b = AppendCompactSize(b, 1)
	b = AppendU64le(b, 12345)
	witnessProg := append([]byte{0x00, 0x14}, bytes.Repeat([]byte{0xab}, 20)...)
	b = AppendCompactSize(b, uint64(len(witnessProg)))
	b = append(b, witnessProg...)
	// Witness stack: dummy signature + dummy pubkey.
	b = AppendCompactSize(b, 2)
	b = AppendCompactSize(b, 71)
	b = append(b, bytes.Repeat([]byte{0x30}, 71)...)
	b = AppendCompactSize(b, 33)
	b = append(b, bytes.Repeat([]byte{0x02}, 33)...)
	b = AppendU32le(b, 0) // locktime
	return b
}

func TestParseTxLegacyRoundtrip(t *testing.T) {
	raw := minimalTxBytes()
	tx, txid, wtxid, n, err := ParseTx(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("consumed %d bytes, want %d", n, len(raw))
	}
	if len(tx.Inputs) != 1 || len(tx.Outputs) != 1 {
		t.Fatalf("unexpected shape: %d inputs, %d outputs", len(tx.Inputs), len(tx.Outputs))
	}
	if tx.HasWitness() {
		t.Fatalf("legacy tx must have no witness")
	}
	if txid != wtxid {
		t.Fatalf("legacy txid and wtxid must agree")
	}
	if txid != DoubleSha256(raw) {
		t.Fatalf("legacy txid must hash the full serialisation")
	}
	if !bytes.Equal(MarshalTx(tx), raw) {
		t.Fatalf("marshal must invert parse")
	}
}

func TestParseTxSegwit(t *testing.T) {
	raw := segwitTxBytes()
	tx, txid, wtxid, n, err := ParseTx(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("consumed %d bytes, want %d", n, len(raw))
	}
	if !tx.HasWitness() {
		t.Fatalf("expected witness data")
	}
	if len(tx.Inputs[0].Witness) != 2 {
		t.Fatalf("witness stack size %d, want 2", len(tx.Inputs[0].Witness))
	}
	if wtxid != DoubleSha256(raw) {
		t.Fatalf("wtxid must hash the full serialisation")
	}
	if txid != DoubleSha256(MarshalTxCore(tx)) {
		t.Fatalf("txid must hash the witness-stripped serialisation")
	}
	if txid == wtxid {
		t.Fatalf("segwit txid and wtxid must differ")
	}
	if !bytes.Equal(MarshalTx(tx), raw) {
		t.Fatalf("marshal must invert parse")
	}
}

func TestParseTxTrailingBytes(t *testing.T) {
	raw := append(minimalTxBytes(), 0xde, 0xad)
	_, _, _, n, err := ParseTx(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(raw)-2 {
		t.Fatalf("consumed %d bytes, want %d", n, len(raw)-2)
	}
	if _, err := TxidFromBytes(raw); err == nil {
		t.Fatalf("TxidFromBytes must reject trailing bytes")
	}
}

func TestParseTxRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{name: "truncated_version", raw: []byte{0x01, 0x00}},
		{name: "bad_segwit_flag", raw: []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x02}},
		{name: "zero_inputs", raw: []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}},
		{name: "truncated_input", raw: []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0xab, 0xcd}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, _, err := ParseTx(tc.raw)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := CodeOf(err); got != TX_ERR_PARSE {
				t.Fatalf("code=%s, want %s", got, TX_ERR_PARSE)
			}
		})
	}
}
