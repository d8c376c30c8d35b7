package core

import "golang.org/x/exp/constraints"

// Series is a time series of ordered values
type Series[T constraints.Ordered] []T

