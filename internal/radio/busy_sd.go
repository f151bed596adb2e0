//go:build softdevice

package radio

import (
	"errors"

	"tinygo.org/x/bluetooth"
)

// NRF_ERROR_RESOURCES: no free notification buffers right now.
const sdErrorResources = 0x13

func isBusy(err error) bool {
	var e bluetooth.Error
	return errors.As(err, &e) && e == sdErrorResources
}
