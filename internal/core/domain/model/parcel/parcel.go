// Package parcel models the physical packages of an order and their scan codes.
package parcel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned by Validate on a zero-value Parcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Parcel is one package of an order, identified at warehouses by its code.
type Parcel struct {
	id      kernel.UUID
	orderID kernel.UUID
	code    string

	isConstructed bool
}

// NewParcel validates and builds a Parcel. The code is normalised to upper case.
func NewParcel(id, orderID kernel.UUID, code string) (*Parcel, error) {
	code = NormalizeCode(code)

	var codeErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), codeErr); err != nil {
		return nil, err
	}

	return &Parcel{
		id:            id,
		orderID:       orderID,
		code:          code,
		isConstructed: true,
	}, nil
}

// GenerateCode derives a scan code from the order id and the parcel's position.
func GenerateCode(orderID kernel.UUID, index int) string {
	raw := strings.ReplaceAll(orderID.String(), "-", "")
	return NormalizeCode(fmt.Sprintf("PCL-%s-%02d", raw[:12], index+1))
}

// NormalizeCode trims and upper-cases a scanned code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Parcel) Code() string {
	return p.code
}
