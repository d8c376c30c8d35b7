package core

import "errors"

var (
	ErrUnorderedCandles  = errors.New("candle timestamps must be strictly increasing")
	ErrTradeTypeNotFound = errors.New("trade type not found")
	ErrInvalidTradeType  = errors.New("invalid trade type")
	ErrMissingColumn     = errors.New("missing column")
)
