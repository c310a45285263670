package consensus

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	TX_ERR_PARSE ErrorCode = "TX_ERR_PARSE"

	BLOCK_ERR_PARSE          ErrorCode = "BLOCK_ERR_PARSE"
	BLOCK_ERR_MERKLE_INVALID ErrorCode = "BLOCK_ERR_MERKLE_INVALID"

	PROOF_ERR_NO_LEAVES   ErrorCode = "PROOF_ERR_NO_LEAVES"
	PROOF_ERR_TRACK_RANGE ErrorCode = "PROOF_ERR_TRACK_RANGE"
	PROOF_ERR_DECODE      ErrorCode = "PROOF_ERR_DECODE"

	STORE_ERR_NOT_FOUND ErrorCode = "STORE_ERR_NOT_FOUND"
	STORE_ERR_LINKAGE   ErrorCode = "STORE_ERR_LINKAGE"
)

type ChainError struct {
	Code ErrorCode
	Msg  string
}

func (e *ChainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Err builds a coded error. Other packages in this module use it to stay
// inside the same taxonomy.
func Err(code ErrorCode, msg string) error {
	return &ChainError{Code: code, Msg: msg}
}

// CodeOf extracts the ErrorCode from err, or "" when err does not carry one.
func CodeOf(err error) ErrorCode {
	var ce *ChainError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
