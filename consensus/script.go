package consensus

// Script opcodes used by the standard output templates.
const (
	opDup         = 0x76
	opHash160     = 0xa9
	opEqual       = 0x87
	opEqualVerify = 0x88
	opChecksig    = 0xac
	opReturn      = 0x6a
)

type ScriptClass byte

const (
	ScriptNonStandard ScriptClass = iota
	ScriptP2PKH
	ScriptP2SH
	ScriptP2WPKH
	ScriptP2WSH
	ScriptNullData
)

func (c ScriptClass) String() string {
	switch c {
	case ScriptP2PKH:
		return "p2pkh"
	case ScriptP2SH:
		return "p2sh"
	case ScriptP2WPKH:
		return "p2wpkh"
	case ScriptP2WSH:
		return "p2wsh"
	case ScriptNullData:
		return "nulldata"
	default:
		return "nonstandard"
	}
}

// ClassifyScriptPubKey matches script against the standard output
// templates and returns the class plus the committed payload (the 20- or
// 32-byte hash; nil for nulldata and nonstandard scripts).
func ClassifyScriptPubKey(script []byte) (ScriptClass, []byte) {
	switch {
	case len(script) == 25 &&
		script[0] == opDup && script[1] == opHash160 && script[2] == 20 &&
		script[23] == opEqualVerify && script[24] == opChecksig:
		return ScriptP2PKH, script[3:23]
	case len(script) == 23 &&
		script[0] == opHash160 && script[1] == 20 && script[22] == opEqual:
		return ScriptP2SH, script[2:22]
	case len(script) == 22 && script[0] == 0x00 && script[1] == 20:
		return ScriptP2WPKH, script[2:22]
	case len(script) == 34 && script[0] == 0x00 && script[1] == 32:
		return ScriptP2WSH, script[2:34]
	case len(script) >= 1 && script[0] == opReturn:
		return ScriptNullData, nil
	default:
		return ScriptNonStandard, nil
	}
}

// P2PKHScript builds the pay-to-pubkey-hash script locking an output to
// the given public key.
func P2PKHScript(pubkey []byte) []byte {
	h := Hash160(pubkey)
	out := make([]byte, 0, 25)
	out = append(out, opDup, opHash160, 20)
	out = append(out, h[:]...)
	out = append(out, opEqualVerify, opChecksig)
	return out
}
