package control

import (
	"bleio-go/errcode"
	"bleio-go/x/logx"
	"bleio-go/x/mathx"
)

const tag = "control"

// ParseRequest splits a control write into opcode and payload.
func ParseRequest(buf []byte) (Request, error) {
	if len(buf) == 0 {
		return Request{}, &errcode.E{C: errcode.MalformedInput, Op: "parse_request", Msg: "empty buffer"}
	}
	return Request{Opcode: Opcode(buf[0]), Payload: buf[1:]}, nil
}

// Dispatcher executes device-management opcodes.
type Dispatcher struct {
	dev Device
}

func NewDispatcher(dev Device) *Dispatcher { return &Dispatcher{dev: dev} }

// Handle decodes buf and runs the opcode. Unknown opcodes yield an empty
// Result and no error.
func (d *Dispatcher) Handle(buf []byte) (Result, error) {
	req, err := ParseRequest(buf)
	if err != nil {
		return Result{}, err
	}
	switch req.Opcode {
	case OpEnterUpdateMode:
		return d.enterUpdateMode(), nil
	case OpSetName:
		return d.setName(req.Payload), nil
	default:
		logx.Warn(tag, "unknown opcode", "op", uint8(req.Opcode))
		return Result{}, nil
	}
}

// enterUpdateMode persists the update flag and asks for a restart. If the
// flag cannot be written the device stays up and answers FAILED instead of
// restarting into a normal boot that would look like success to the peer.
func (d *Dispatcher) enterUpdateMode() Result {
	if err := d.dev.SetPersistentFlag(UpdateModeFlag); err != nil {
		logx.Error(tag, "set update flag failed", "err", err)
		return Result{Notify: []Response{{Opcode: OpEnterUpdateMode, Status: StatusFailed}}}
	}
	logx.Info(tag, "entering update mode")
	return Result{
		Notify:  []Response{{Opcode: OpEnterUpdateMode, Status: StatusSuccess}},
		Restart: true,
	}
}

// setName attempts the write but always answers NOT_SUPPORTED, once as the
// characteristic value and once as a notification. Peers depend on that.
func (d *Dispatcher) setName(p []byte) Result {
	name := nameFromPayload(p)
	if err := d.dev.SetName(name, PermOpen); err != nil {
		logx.Warn(tag, "set name failed", "err", err)
	} else {
		logx.Info(tag, "set name", "name", string(name))
	}
	resp := Response{Opcode: OpSetName, Status: StatusNotSupported}
	return Result{Direct: &resp, Notify: []Response{resp}}
}

// nameFromPayload reads {L, name[0..L]}, truncating to the bytes present.
func nameFromPayload(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	rest := p[1:]
	return rest[:mathx.Min(int(p[0]), len(rest))]
}
