package core

import (
	"time"
)

// Dataframe is the columnar view of a candle table
type Dataframe struct {
	Pair string

	Close  Series[float64]
	Open   Series[float64]
	High   Series[float64]
	Low    Series[float64]
	Volume Series[float64]

	Time []time.Time
}

// NewDataframe builds the columns of a dataframe from a candle slice
func NewDataframe(candles []Candle) *Dataframe {
	df := &Dataframe{
		Close:  make(Series[float64], 0, len(candles)),
		Open:   make(Series[float64], 0, len(candles)),
		High:   make(Series[float64], 0, len(candles)),
		Low:    make(Series[float64], 0, len(candles)),
		Volume: make(Series[float64], 0, len(candles)),
		Time:   make([]time.Time, 0, len(candles)),
	}

	for _, candle := range candles {
		if df.Pair == "" {
			df.Pair = candle.Pair
		}
		df.Close = append(df.Close, candle.Close)
		df.Open = append(df.Open, candle.Open)
		df.High = append(df.High, candle.High)
		df.Low = append(df.Low, candle.Low)
		df.Volume = append(df.Volume, candle.Volume)
		df.Time = append(df.Time, candle.Time)
	}

	return df
}

// Len returns the number of rows in the dataframe
func (df Dataframe) Len() int {
	return len(df.Time)
}
