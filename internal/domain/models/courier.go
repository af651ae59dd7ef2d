package models

import (
	"regexp"
	"strings"
)

// Courier identifies the carrier behind a tracking number.
type Courier string

const (
	CourierUPS     Courier = "UPS"
	CourierFedEx   Courier = "FedEx"
	CourierUnknown Courier = "unknown"
)

var (
	upsPattern   = regexp.MustCompile(`^[A-Za-z0-9]{18}$`)
	fedexPattern = regexp.MustCompile(`^(\d{12}|\d{15})$`)
)

// ClassifyCourier infers the carrier from the shape of a tracking number.
func ClassifyCourier(trackingNumber string) Courier {
	switch {
	case strings.HasPrefix(trackingNumber, "1Z"), upsPattern.MatchString(trackingNumber):
		return CourierUPS
	case fedexPattern.MatchString(trackingNumber):
		return CourierFedEx
	default:
		return CourierUnknown
	}
}
