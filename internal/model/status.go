package model

import "strings"

// Status is a telemetered resource status code as published in SCED data.
// Keep these values stable; they are matched against upstream data verbatim.
type Status string

const (
	StatusOnline   Status = "ON"
	StatusOnTest   Status = "ONTEST"
	StatusOffQS    Status = "OFFQS"
	StatusOffNS    Status = "OFFNS"
	StatusOff      Status = "OFF"
	StatusOut      Status = "OUT"
	StatusShutdown Status = "SHUTDOWN"
)

// UnavailableStatuses lists the statuses whose capacity is not offered to the market.
func UnavailableStatuses() []Status {
	return []Status{
		StatusOnTest,
		StatusOffQS,
		StatusOffNS,
		StatusOff,
		StatusOut,
		StatusShutdown,
	}
}

// NormalizeStatus trims and upper-cases a raw status code.
func NormalizeStatus(s string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(s)))
}
