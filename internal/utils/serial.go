package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Serial prefixes and floors used across the pipeline. The floors
// exist because the books started on paper: the first generated
// number must continue the historical ledger, not restart at 1.
const (
	PrefixDemand  = "SF-"
	PrefixJobCard = "SJC-"
	PrefixActual  = "SA-"

	FloorDemand  = 99
	FloorJobCard = 380
	FloorActual  = 0

	PadActual = 3
)

// NextSerial computes the next serial for a prefix from the serial
// values currently on the sheet. Cells that do not carry the prefix or
// whose suffix is not a number are ignored. The result is always
// strictly greater than both the floor and every parsed suffix, so a
// sheet full of garbage still yields floor+1.
func NextSerial(values []string, prefix string, floor, pad int) string {
	max := floor
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(v, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	next := max + 1
	if pad > 0 {
		return fmt.Sprintf("%s%0*d", prefix, pad, next)
	}
	return fmt.Sprintf("%s%d", prefix, next)
}

// NextDemandSerial returns the next SF- number (seed SF-100).
func NextDemandSerial(values []string) string {
	return NextSerial(values, PrefixDemand, FloorDemand, 0)
}

// NextJobCardSerial returns the next SJC- number (seed SJC-381).
func NextJobCardSerial(values []string) string {
	return NextSerial(values, PrefixJobCard, FloorJobCard, 0)
}

// NextActualSerial returns the next SA- number, zero-padded to three
// digits (seed SA-001).
func NextActualSerial(values []string) string {
	return NextSerial(values, PrefixActual, FloorActual, PadActual)
}
