package control

// Permission is the write permission attached to the advertised device name.
type Permission uint8

const (
	// PermOpen allows writes without pairing or encryption.
	PermOpen Permission = iota
	PermEncrypted
)

// Device is the device-management collaborator.
type Device interface {
	SetPersistentFlag(mask uint32) error
	SetName(name []byte, perm Permission) error
	// Reset restarts the device. It does not return on hardware.
	Reset()
}

// Request is a decoded control write.
type Request struct {
	Opcode  Opcode
	Payload []byte
}

// Response is one frame sent back to the peer.
type Response struct {
	Opcode  Opcode
	Status  Status
	Payload []byte
}

// Bytes encodes r as [marker, opcode, status, payload...].
func (r Response) Bytes() []byte {
	b := make([]byte, 0, 3+len(r.Payload))
	b = append(b, ResponseMarker, byte(r.Opcode), byte(r.Status))
	return append(b, r.Payload...)
}

// Result tells the caller what to emit and whether to restart afterwards.
// Direct is written as the characteristic value, Notify entries are sent as
// notifications in order.
type Result struct {
	Direct  *Response
	Notify  []Response
	Restart bool
}

// Empty reports a result with nothing to send and nothing to do.
func (r Result) Empty() bool { return r.Direct == nil && len(r.Notify) == 0 && !r.Restart }
