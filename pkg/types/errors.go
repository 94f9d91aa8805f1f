package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/pump"
)

// Common SDK errors
var (
	// Parameter validation errors
	ErrNilRPC           = errors.New("rpc client is nil")
	ErrNilSigner        = errors.New("signer is nil")
	ErrZeroAmount       = errors.New("amount must be greater than 0")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrNoInstructions   = errors.New("requires at least one instruction")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrLaunchNotFound       = errors.New("launch account not found")
	ErrContributionNotFound = errors.New("contribution account not found")
	ErrGlobalConfigNotFound = errors.New("pump global config not found")
	ErrBondingCurveNotFound = errors.New("bonding curve not found")

	// Launch lifecycle errors
	ErrLaunchNotOpen      = errors.New("launch is not open")
	ErrLaunchNotFinalized = errors.New("launch is not finalized")
	ErrWithdrawTooLarge   = errors.New("withdraw exceeds contribution")
	ErrAlreadyClaimed     = errors.New("contribution already claimed")

	// Transaction errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSlippageExceeded    = errors.New("slippage exceeded")
	ErrSimulationFailed    = errors.New("simulation failed")
)

// RPCError wraps RPC failures with operation context.
type RPCError struct {
	Op  string
	Err error
}

func (e RPCError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e RPCError) Unwrap() error {
	return e.Err
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ProgramError represents on-chain program execution errors.
type ProgramError struct {
	Program string
	Code    int
	Name    string
	Message string
	Logs    []string
}

func (e *ProgramError) Error() string {
	if e.Program == "" {
		return fmt.Sprintf("program error [%d]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("program %s error [%d]: %s", e.Program, e.Code, e.Message)
}

// Is maps well-known program errors onto SDK sentinels so callers can use
// errors.Is without knowing the program's numbering.
func (e *ProgramError) Is(target error) bool {
	switch e.Name {
	case "LaunchNotOpen", "DeadlinePassed":
		return target == ErrLaunchNotOpen
	case "NotFinalized":
		return target == ErrLaunchNotFinalized
	case "WithdrawExceedsContribution":
		return target == ErrWithdrawTooLarge
	case "AlreadyClaimed":
		return target == ErrAlreadyClaimed
	case "SlippageExceeded", "TooMuchSolRequired", "TooLittleSolReceived":
		return target == ErrSlippageExceeded
	}
	return false
}

// SimulationError contains simulation failure details.
type SimulationError struct {
	Err  interface{}
	Logs []string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation failed: %v", e.Err)
}

func (e *SimulationError) Unwrap() error {
	return ErrSimulationFailed
}

// ParseLaunchpadError converts a launchpad program error code to a ProgramError.
func ParseLaunchpadError(code int) error {
	if err, ok := launchpad.ErrorFromCode(uint32(code)); ok {
		return &ProgramError{Program: "launchpad", Code: code, Name: err.Name, Message: messageOf(err.Msg, err.Name)}
	}
	return fmt.Errorf("launchpad error code %d", code)
}

// ParsePumpError converts a pump program error code to a ProgramError.
func ParsePumpError(code int) error {
	if err, ok := pump.ErrorFromCode(uint32(code)); ok {
		return &ProgramError{Program: "pump", Code: code, Name: err.Name, Message: messageOf(err.Msg, err.Name)}
	}
	return fmt.Errorf("pump error code %d", code)
}

// ParseSimulationError extracts error details from a simulation result.
// Launchpad and pump both number custom errors from 6000, so the failing
// program is taken from the logs; finalize CPIs into pump and either can fail.
func ParseSimulationError(errVal interface{}, logs []string) error {
	if errVal == nil {
		return nil
	}

	code, ok := customCode(errVal)
	if !ok {
		return &SimulationError{Err: errVal, Logs: logs}
	}

	account := extractAccountFromLogs(logs)
	perr := decodeCode(failingProgram(logs), code)
	if account != "" && perr.Program != "" {
		perr.Message = fmt.Sprintf("%s (account: %s)", perr.Message, account)
	}
	perr.Logs = logs
	return perr
}

func customCode(errVal interface{}) (int, bool) {
	errMap, ok := errVal.(map[string]interface{})
	if !ok {
		return 0, false
	}
	errSlice, ok := errMap["InstructionError"].([]interface{})
	if !ok || len(errSlice) < 2 {
		return 0, false
	}
	custom, ok := errSlice[1].(map[string]interface{})
	if !ok {
		return 0, false
	}
	code, ok := custom["Custom"].(float64)
	if !ok {
		return 0, false
	}
	return int(code), true
}

func decodeCode(program string, code int) *ProgramError {
	switch code {
	case 3012:
		return &ProgramError{Code: code, Name: "AccountNotInitialized", Message: "account not initialized"}
	case 2023:
		return &ProgramError{Code: code, Name: "ConstraintMintTokenProgram", Message: "token program constraint violated (wrong token program for mint)"}
	case 3008:
		return &ProgramError{Code: code, Name: "InvalidProgramId", Message: "program ID was not as expected (wrong program)"}
	}

	lookups := []struct {
		name string
		fn   func(uint32) (string, string, bool)
	}{
		{"launchpad", func(c uint32) (string, string, bool) {
			e, ok := launchpad.ErrorFromCode(c)
			return e.Name, e.Msg, ok
		}},
		{"pump", func(c uint32) (string, string, bool) {
			e, ok := pump.ErrorFromCode(c)
			return e.Name, e.Msg, ok
		}},
	}
	// Without a program in the logs launchpad is tried first.
	for _, l := range lookups {
		if program != "" && program != l.name {
			continue
		}
		if name, msg, ok := l.fn(uint32(code)); ok {
			return &ProgramError{Program: l.name, Code: code, Name: name, Message: messageOf(msg, name)}
		}
	}
	return &ProgramError{Program: program, Code: code, Message: fmt.Sprintf("error code %d", code)}
}

// failingProgram returns "launchpad" or "pump" from the first
// "Program <id> failed" log line, or "" if neither is recognised. The
// innermost program fails first; callers re-report the same code after it.
func failingProgram(logs []string) string {
	for _, line := range logs {
		if !strings.HasPrefix(line, "Program ") || !strings.Contains(line, " failed") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[1] {
		case pump.ProgramID:
			return "pump"
		case launchpad.ProgramID:
			return "launchpad"
		}
		return ""
	}
	return ""
}

// extractAccountFromLogs extracts the account name from Anchor error logs.
func extractAccountFromLogs(logs []string) string {
	const marker = "caused by account: "
	for _, line := range logs {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(marker):]
		if end := strings.Index(rest, "."); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	return ""
}

func messageOf(msg, name string) string {
	if msg != "" {
		return msg
	}
	return toReadableError(name)
}

// toReadableError converts a CamelCase error name to words.
func toReadableError(name string) string {
	if name == "" {
		return "unknown error"
	}
	var b strings.Builder
	for i, c := range name {
		if i > 0 && c >= 'A' && c <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// IsRetryableError reports whether resubmitting could succeed. Program
// errors are deterministic and never retryable.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var progErr *ProgramError
	if errors.As(err, &progErr) {
		return false
	}
	var valErr ValidationError
	return !errors.As(err, &valErr)
}
