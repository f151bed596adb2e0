package control

// Opcode is the first byte of a control write.
type Opcode uint8

const (
	OpEnterUpdateMode Opcode = 0x01
	OpSetName         Opcode = 0x02
)

// Status is the third byte of a response.
type Status uint8

const (
	StatusSuccess      Status = 0x01
	StatusNotSupported Status = 0x02
	StatusFailed       Status = 0x04
	StatusBusy         Status = 0x06
)

// ResponseMarker leads every response frame.
const ResponseMarker byte = 0x20

// UpdateModeFlag is written to the persistent register before a restart so
// the bootloader stays in update mode.
const UpdateModeFlag uint32 = 0x01

func (o Opcode) String() string {
	switch o {
	case OpEnterUpdateMode:
		return "enter_update_mode"
	case OpSetName:
		return "set_name"
	default:
		return "unknown"
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotSupported:
		return "not_supported"
	case StatusFailed:
		return "failed"
	case StatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}
