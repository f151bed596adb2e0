// internal/platform/platform_host.go
//go:build !linux && !microbit_v2

package platform

import (
	"context"

	"bleio-go/errcode"
	"bleio-go/internal/boards"
	"bleio-go/services/indicator"
)

// Other hosts have no pins. Tests inject fakes instead.
func open(boards.Board) (*Platform, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform.open", Msg: "no GPIO on this host"}
}

func startMatrix(context.Context, *Platform) (indicator.Display, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform.matrix"}
}
