package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// ReasonCode explains why an order failed, was held, cancelled or sent back.
type ReasonCode string

const (
	ReasonAddressIssue        ReasonCode = "ADDRESS_ISSUE"
	ReasonCustomerUnavailable ReasonCode = "CUSTOMER_UNAVAILABLE"
	ReasonCustomerRefused     ReasonCode = "CUSTOMER_REFUSED"
	ReasonDamaged             ReasonCode = "DAMAGED"
	ReasonWeather             ReasonCode = "WEATHER"
	ReasonVehicleIssue        ReasonCode = "VEHICLE_ISSUE"
	ReasonCustomerRequest     ReasonCode = "CUSTOMER_REQUEST"
	ReasonCapacity            ReasonCode = "CAPACITY"
	ReasonOther               ReasonCode = "OTHER"
)

var reasonCodes = map[ReasonCode]struct{}{
	ReasonAddressIssue:        {},
	ReasonCustomerUnavailable: {},
	ReasonCustomerRefused:     {},
	ReasonDamaged:             {},
	ReasonWeather:             {},
	ReasonVehicleIssue:        {},
	ReasonCustomerRequest:     {},
	ReasonCapacity:            {},
	ReasonOther:               {},
}

// ParseReasonCode validates s and returns it as a ReasonCode.
func ParseReasonCode(s string) (ReasonCode, error) {
	code := ReasonCode(s)
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

// Validate rejects values outside the known set, including the empty string.
func (c ReasonCode) Validate() error {
	if _, ok := reasonCodes[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reasonCode", fmt.Errorf("%q is not a valid reason code", string(c)))
	}
	return nil
}

func (c ReasonCode) String() string {
	return string(c)
}
