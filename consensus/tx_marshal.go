package consensus

// MarshalTxCore serialises a transaction in the legacy (witness-stripped)
// form. Txids are computed over this form regardless of how the
// transaction arrived on the wire.
func MarshalTxCore(tx *Tx) []byte {
	var b []byte

	b = AppendU32le(b, tx.Version)

	b = AppendCompactSize(b, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		b = append(b, in.PrevTxid[:]...)
		b = AppendU32le(b, in.PrevVout)
		b = AppendCompactSize(b, uint64(len(in.ScriptSig)))
		b = append(b, in.ScriptSig...)
		b = AppendU32le(b, in.Sequence)
	}

	b = AppendCompactSize(b, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		o := &tx.Outputs[i]
		b = AppendU64le(b, o.Value)
		b = AppendCompactSize(b, uint64(len(o.ScriptPubKey)))
		b = append(b, o.ScriptPubKey...)
	}

	b = AppendU32le(b, tx.Locktime)
	return b
}

// MarshalTx serialises a transaction in its wire form: BIP-144 when any
// input carries witness data, legacy otherwise. Inverse of ParseTx.
func MarshalTx(tx *Tx) []byte {
	if !tx.HasWitness() {
		return MarshalTxCore(tx)
	}

	var b []byte
	b = AppendU32le(b, tx.Version)
	b = append(b, segwitMarker, segwitFlag)

	b = AppendCompactSize(b, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		b = append(b, in.PrevTxid[:]...)
		b = AppendU32le(b, in.PrevVout)
		b = AppendCompactSize(b, uint64(len(in.ScriptSig)))
		b = append(b, in.ScriptSig...)
		b = AppendU32le(b, in.Sequence)
	}

	b = AppendCompactSize(b, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		o := &tx.Outputs[i]
		b = AppendU64le(b, o.Value)
		b = AppendCompactSize(b, uint64(len(o.ScriptPubKey)))
		b = append(b, o.ScriptPubKey...)
	}

	for i := range tx.Inputs {
		items := tx.Inputs[i].Witness
		b = AppendCompactSize(b, uint64(len(items)))
		for _, item := range items {
			b = AppendCompactSize(b, uint64(len(item)))
			b = append(b, item...)
		}
	}

	b = AppendU32le(b, tx.Locktime)
	return b
}
