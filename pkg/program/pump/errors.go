package pump

type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

var Errors = map[uint32]ProgramError{
	6000: {Code: 6000, Name: "NotAuthorized", Msg: "The given account is not authorized to execute this instruction."},
	6001: {Code: 6001, Name: "AlreadyInitialized", Msg: "The program is already initialized."},
	6002: {Code: 6002, Name: "TooMuchSolRequired", Msg: "slippage: Too much SOL required to buy the given amount of tokens."},
	6003: {Code: 6003, Name: "TooLittleSolReceived", Msg: "slippage: Too little SOL received to sell the given amount of tokens."},
	6004: {Code: 6004, Name: "MintDoesNotMatchBondingCurve", Msg: "The mint does not match the bonding curve."},
	6005: {Code: 6005, Name: "BondingCurveComplete", Msg: "The bonding curve has completed and liquidity migrated to raydium."},
	6006: {Code: 6006, Name: "BondingCurveNotComplete", Msg: "The bonding curve has not completed."},
	6007: {Code: 6007, Name: "NotInitialized", Msg: "The program is not initialized."},
	6008: {Code: 6008, Name: "WithdrawTooFrequent", Msg: "Withdraw too frequent"},
	6020: {Code: 6020, Name: "BuyZeroAmount", Msg: ""},
	6021: {Code: 6021, Name: "NotEnoughTokensToBuy", Msg: ""},
	6022: {Code: 6022, Name: "SellZeroAmount", Msg: ""},
	6023: {Code: 6023, Name: "NotEnoughTokensToSell", Msg: ""},
	6024: {Code: 6024, Name: "Overflow", Msg: ""},
	6025: {Code: 6025, Name: "Truncation", Msg: ""},
	6026: {Code: 6026, Name: "DivisionByZero", Msg: ""},
}

func ErrorFromCode(code uint32) (ProgramError, bool) {
	err, ok := Errors[code]
	return err, ok
}
