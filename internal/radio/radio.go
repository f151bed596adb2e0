//go:build softdevice || linux

package radio

import (
	"context"
	"sync"

	"bleio-go/errcode"
	"bleio-go/services/ble"
	"bleio-go/x/logx"

	"tinygo.org/x/bluetooth"
)

var _ ble.Radio = (*Radio)(nil)

// Radio adapts a tinygo bluetooth adapter to ble.Radio. One connection at a
// time.
type Radio struct {
	adapter *bluetooth.Adapter

	digital bluetooth.Characteristic
	control bluetooth.Characteristic

	connects chan bluetooth.Device

	mu     sync.Mutex
	active *session
}

func New(adapter *bluetooth.Adapter) *Radio {
	return &Radio{
		adapter:  adapter,
		connects: make(chan bluetooth.Device, 1),
	}
}

// Enable starts the stack and registers the GATT service.
func (r *Radio) Enable() error {
	if err := r.adapter.Enable(); err != nil {
		return errcode.Wrap(errcode.Transport, "radio.enable", err)
	}
	r.adapter.SetConnectHandler(r.onConnect)

	err := r.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.NewUUID(ble.ServiceUUID),
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &r.digital,
				UUID:   bluetooth.NewUUID(ble.DigitalUUID),
				Value:  []byte{},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicWriteWithoutResponsePermission |
					bluetooth.CharacteristicNotifyPermission,
				WriteEvent: r.onWrite(ble.CharDigital),
			},
			{
				Handle: &r.control,
				UUID:   bluetooth.NewUUID(ble.ControlUUID),
				Value:  []byte{},
				Flags: bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicNotifyPermission |
					bluetooth.CharacteristicIndicatePermission,
				WriteEvent: r.onWrite(ble.CharControl),
			},
		},
	})
	if err != nil {
		return errcode.Wrap(errcode.Transport, "radio.add_service", err)
	}
	return nil
}

func (r *Radio) onConnect(dev bluetooth.Device, connected bool) {
	if connected {
		select {
		case r.connects <- dev:
		default:
			logx.Warn("radio", "connection not awaited, dropping")
			_ = dev.Disconnect()
		}
		return
	}
	// A late callback for an earlier central must not end the current one.
	peer := dev.Address.String()
	r.mu.Lock()
	s := r.active
	if s == nil || s.peer != peer {
		r.mu.Unlock()
		return
	}
	r.active = nil
	r.mu.Unlock()
	// The stack does not report the HCI reason.
	s.end(0)
}

func (r *Radio) onWrite(c ble.Characteristic) func(bluetooth.Connection, int, []byte) {
	return func(_ bluetooth.Connection, offset int, value []byte) {
		if offset != 0 {
			logx.Warn("radio", "long write ignored", "char", c.String(), "offset", offset)
			return
		}
		r.mu.Lock()
		s := r.active
		r.mu.Unlock()
		if s == nil {
			return
		}
		s.push(ble.Event{Kind: ble.EventWrite, Char: c, Data: append([]byte(nil), value...)})
	}
}

func (r *Radio) handle(c ble.Characteristic) *bluetooth.Characteristic {
	if c == ble.CharControl {
		return &r.control
	}
	return &r.digital
}

// Advertise implements ble.Radio. The stack builds the advertising payload
// itself and takes no raw bytes; no scan response is set.
func (r *Radio) Advertise(ctx context.Context, adv ble.Advertisement) (ble.Conn, error) {
	// A central left over from an aborted cycle is not ours any more.
	select {
	case stale := <-r.connects:
		_ = stale.Disconnect()
	default:
	}

	a := r.adapter.DefaultAdvertisement()
	err := a.Configure(bluetooth.AdvertisementOptions{
		LocalName:    adv.Name,
		ServiceUUIDs: []bluetooth.UUID{bluetooth.New16BitUUID(adv.Service)},
	})
	if err != nil {
		return nil, errcode.Wrap(errcode.Transport, "radio.configure", err)
	}
	if err := a.Start(); err != nil {
		return nil, errcode.Wrap(errcode.Transport, "radio.start", err)
	}

	select {
	case <-ctx.Done():
		_ = a.Stop()
		return nil, errcode.Aborted
	case dev := <-r.connects:
		_ = a.Stop()
		s := newSession(
			func(c ble.Characteristic, p []byte) error {
				_, err := r.handle(c).Write(p)
				return err
			},
			dev.Disconnect,
		)
		s.peer = dev.Address.String()
		r.mu.Lock()
		r.active = s
		r.mu.Unlock()
		return s, nil
	}
}
