package admin

import "strconv"

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
