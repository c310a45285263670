package consensus

const (
	segwitMarker = 0x00
	segwitFlag   = 0x01

	// Minimal serialised sizes, used to reject absurd counts before
	// allocating.
	minInputBytes  = 32 + 4 + 1 + 4
	minOutputBytes = 8 + 1
)

// ParseTx parses one transaction from the start of b, accepting both the
// legacy and the BIP-144 (segwit) serialisation. It returns the parsed
// transaction, its txid (double-SHA256 of the witness-stripped form), its
// wtxid (double-SHA256 of the full form) and the number of bytes consumed.
// Trailing bytes are left for the caller, which is how block parsing walks
// the tx list.
func ParseTx(b []byte) (*Tx, [32]byte, [32]byte, int, error) {
	var zero [32]byte
	off := 0

	version, err := readU32le(b, &off)
	if err != nil {
		return nil, zero, zero, 0, err
	}

	// A 0x00 where the input count belongs can only be the segwit
	// marker: zero-input transactions are not valid.
	segwit := false
	if off < len(b) && b[off] == segwitMarker {
		if off+1 >= len(b) || b[off+1] != segwitFlag {
			return nil, zero, zero, 0, Err(TX_ERR_PARSE, "invalid segwit flag")
		}
		segwit = true
		off += 2
	}

	inCountU64, err := readCompactSize(b, &off)
	if err != nil {
		return nil, zero, zero, 0, err
	}
	if inCountU64 == 0 {
		return nil, zero, zero, 0, Err(TX_ERR_PARSE, "tx has no inputs")
	}
	if inCountU64 > uint64(len(b)-off)/minInputBytes {
		return nil, zero, zero, 0, Err(TX_ERR_PARSE, "input_count overflow")
	}
	inCount := int(inCountU64)

	inputs := make([]TxInput, 0, inCount)
	for i := 0; i < inCount; i++ {
		prevTxidBytes, err := readBytes(b, &off, 32)
		if err != nil {
			return nil, zero, zero, 0, err
		}
		var prevTxid [32]byte
		copy(prevTxid[:], prevTxidBytes)

		prevVout, err := readU32le(b, &off)
		if err != nil {
			return nil, zero, zero, 0, err
		}

		scriptSigLenU64, err := readCompactSize(b, &off)
		if err != nil {
			return nil, zero, zero, 0, err
		}
		scriptSigLen, err := csLen(scriptSigLenU64, b, "script_sig_len")
		if err != nil {
			return nil, zero, zero, 0, err
		}
		scriptSig, err := readBytes(b, &off, scriptSigLen)
		if err != nil {
			return nil, zero, zero, 0, err
		}

		sequence, err := readU32le(b, &off)
		if err != nil {
			return nil, zero, zero, 0, err
		}

		inputs = append(inputs, TxInput{
			PrevTxid:  prevTxid,
			PrevVout:  prevVout,
			ScriptSig: scriptSig,
			Sequence:  sequence,
		})
	}

	outCountU64, err := readCompactSize(b, &off)
	if err != nil {
		return nil, zero, zero, 0, err
	}
	if outCountU64 > uint64(len(b)-off)/minOutputBytes+1 {
		return nil, zero, zero, 0, Err(TX_ERR_PARSE, "output_count overflow")
	}
	outCount := int(outCountU64)

	outputs := make([]TxOutput, 0, outCount)
	for i := 0; i < outCount; i++ {
		value, err := readU64le(b, &off)
		if err != nil {
			return nil, zero, zero, 0, err
		}
		pkLenU64, err := readCompactSize(b, &off)
		if err != nil {
			return nil, zero, zero, 0, err
		}
		pkLen, err := csLen(pkLenU64, b, "script_pubkey_len")
		if err != nil {
			return nil, zero, zero, 0, err
		}
		pkScript, err := readBytes(b, &off, pkLen)
		if err != nil {
			return nil, zero, zero, 0, err
		}
		outputs = append(outputs, TxOutput{
			Value:        value,
			ScriptPubKey: pkScript,
		})
	}

	if segwit {
		sawWitness := false
		for i := 0; i < inCount; i++ {
			itemCountU64, err := readCompactSize(b, &off)
			if err != nil {
				return nil, zero, zero, 0, err
			}
			itemCount, err := csLen(itemCountU64, b, "witness_item_count")
			if err != nil {
				return nil, zero, zero, 0, err
			}
			if itemCount == 0 {
				continue
			}
			sawWitness = true
			items := make([][]byte, 0, itemCount)
			for j := 0; j < itemCount; j++ {
				itemLenU64, err := readCompactSize(b, &off)
				if err != nil {
					return nil, zero, zero, 0, err
				}
				itemLen, err := csLen(itemLenU64, b, "witness_item_len")
				if err != nil {
					return nil, zero, zero, 0, err
				}
				item, err := readBytes(b, &off, itemLen)
				if err != nil {
					return nil, zero, zero, 0, err
				}
				items = append(items, item)
			}
			inputs[i].Witness = items
		}
		if !sawWitness {
			return nil, zero, zero, 0, Err(TX_ERR_PARSE, "segwit marker without witness data")
		}
	}

	locktime, err := readU32le(b, &off)
	if err != nil {
		return nil, zero, zero, 0, err
	}

	tx := &Tx{
		Version:  version,
		Inputs:   inputs,
		Outputs:  outputs,
		Locktime: locktime,
	}

	wtxid := DoubleSha256(b[:off])
	txid := wtxid
	if segwit {
		txid = DoubleSha256(MarshalTxCore(tx))
	}
	return tx, txid, wtxid, off, nil
}

// TxidFromBytes parses b as a complete transaction (no trailing bytes)
// and returns its txid.
func TxidFromBytes(b []byte) ([32]byte, error) {
	var zero [32]byte
	_, txid, _, n, err := ParseTx(b)
	if err != nil {
		return zero, err
	}
	if n != len(b) {
		return zero, Err(TX_ERR_PARSE, "trailing bytes after tx")
	}
	return txid, nil
}
