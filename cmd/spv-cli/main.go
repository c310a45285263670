package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bitspv.dev/wallet/consensus"
	"bitspv.dev/wallet/node"
	"bitspv.dev/wallet/spv"
)

type PathStepJSON struct {
	Before  bool   `json:"before"`
	Sibling string `json:"sibling"`
}

type Request struct {
	Op        string   `json:"op"`
	TxHex     string   `json:"tx_hex,omitempty"`
	BlockHex  string   `json:"block_hex,omitempty"`
	HeaderHex string   `json:"header_hex,omitempty"`
	ProofHex  string   `json:"proof_hex,omitempty"`
	Txids     []string `json:"txids,omitempty"`
	Track     int      `json:"track,omitempty"`
	ScriptHex string   `json:"script_hex,omitempty"`
	PubkeyHex string   `json:"pubkey_hex,omitempty"`
}

type Response struct {
	Ok          bool           `json:"ok"`
	Err         string         `json:"err,omitempty"`
	TxidHex     string         `json:"txid,omitempty"`
	WtxidHex    string         `json:"wtxid,omitempty"`
	MerkleHex   string         `json:"merkle_root,omitempty"`
	BlockHash   string         `json:"block_hash,omitempty"`
	ProofHex    string         `json:"proof,omitempty"`
	Path        []PathStepJSON `json:"path,omitempty"`
	Valid       *bool          `json:"valid,omitempty"`
	ScriptClass string         `json:"script_class,omitempty"`
	ScriptHex   string         `json:"script,omitempty"`
	Consumed    int            `json:"consumed,omitempty"`
}

func writeResp(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func fail(w io.Writer, err error) {
	if code := consensus.CodeOf(err); code != "" {
		writeResp(w, Response{Ok: false, Err: string(code)})
		return
	}
	writeResp(w, Response{Ok: false, Err: err.Error()})
}

func decodeHash(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("bad hash hex")
	}
	copy(out[:], b)
	return out, nil
}

func proofSteps(pt *spv.ProvedTransaction) []PathStepJSON {
	path := pt.Path()
	steps := make([]PathStepJSON, 0, len(path))
	for _, s := range path {
		steps = append(steps, PathStepJSON{
			Before:  s.SiblingBefore,
			Sibling: hex.EncodeToString(s.Sibling[:]),
		})
	}
	return steps
}

func proofResponse(pt *spv.ProvedTransaction) Response {
	txid := pt.Txid()
	blockHash := pt.BlockHash()
	root := pt.MerkleRoot()
	return Response{
		Ok:        true,
		TxidHex:   hex.EncodeToString(txid[:]),
		BlockHash: hex.EncodeToString(blockHash[:]),
		MerkleHex: hex.EncodeToString(root[:]),
		ProofHex:  hex.EncodeToString(pt.Encode()),
		Path:      proofSteps(pt),
	}
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResp(os.Stdout, Response{Ok: false, Err: fmt.Sprintf("bad request: %v", err)})
		return
	}

	switch req.Op {
	case "parse_tx":
		txBytes, err := hex.DecodeString(req.TxHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		_, txid, wtxid, n, err := consensus.ParseTx(txBytes)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, Response{
			Ok:       true,
			TxidHex:  hex.EncodeToString(txid[:]),
			WtxidHex: hex.EncodeToString(wtxid[:]),
			Consumed: n,
		})

	case "merkle_root":
		txids := make([][32]byte, 0, len(req.Txids))
		for _, h := range req.Txids {
			txid, err := decodeHash(h)
			if err != nil {
				writeResp(os.Stdout, Response{Ok: false, Err: "bad txid"})
				return
			}
			txids = append(txids, txid)
		}
		root, err := consensus.MerkleRootTxids(txids)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, Response{Ok: true, MerkleHex: hex.EncodeToString(root[:])})

	case "compute_proof":
		blockBytes, err := hex.DecodeString(req.BlockHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		blk, err := consensus.ParseBlock(blockBytes)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		pt, err := spv.NewProvedTransaction(blk, req.Track)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, proofResponse(pt))

	case "decode_proof":
		proofBytes, err := hex.DecodeString(req.ProofHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		pt, err := spv.Decode(proofBytes)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, proofResponse(pt))

	case "verify_proof":
		proofBytes, err := hex.DecodeString(req.ProofHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		headerBytes, err := hex.DecodeString(req.HeaderHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		pt, err := spv.Decode(proofBytes)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		valid, err := node.VerifyProof(pt, headerBytes)
		if err != nil {
			fail(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, Response{Ok: true, Valid: &valid})

	case "script_class":
		script, err := hex.DecodeString(req.ScriptHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		class, _ := consensus.ClassifyScriptPubKey(script)
		writeResp(os.Stdout, Response{Ok: true, ScriptClass: class.String()})

	case "p2pkh_script":
		pubkey, err := hex.DecodeString(req.PubkeyHex)
		if err != nil || len(pubkey) == 0 {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad pubkey"})
			return
		}
		script := consensus.P2PKHScript(pubkey)
		writeResp(os.Stdout, Response{Ok: true, ScriptHex: hex.EncodeToString(script)})

	default:
		writeResp(os.Stdout, Response{Ok: false, Err: "unknown op"})
	}
}
