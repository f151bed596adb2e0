//go:build !softdevice

package radio

import (
	"errors"

	"bleio-go/errcode"
)

func isBusy(err error) bool { return errors.Is(err, errcode.Busy) }
