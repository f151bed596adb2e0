package ble

import "github.com/google/uuid"

// GATT layout exposed to peers.
var (
	ServiceUUID = uuid.MustParse("bada5555-e91f-1337-a49b-8675309fb099")
	// DigitalUUID is the 16-bit 0x2A56 (Digital) characteristic in long form.
	DigitalUUID = uuid.MustParse("00002a56-0000-1000-8000-00805f9b34fb")
	ControlUUID = uuid.MustParse("bada5556-e91f-1337-a49b-8675309fb099")
)

// AdvertisedService is the 16-bit UUID carried in the advertising payload.
const AdvertisedService uint16 = 0x1809

// DefaultName is the complete local name advertised at boot.
const DefaultName = "HelloRust"

// Characteristic identifies one of the writable characteristics.
type Characteristic uint8

const (
	CharDigital Characteristic = iota
	CharControl
)

func (c Characteristic) String() string {
	switch c {
	case CharDigital:
		return "digital"
	case CharControl:
		return "control"
	default:
		return "unknown"
	}
}

// UUID maps c to its GATT UUID.
func (c Characteristic) UUID() uuid.UUID {
	if c == CharControl {
		return ControlUUID
	}
	return DigitalUUID
}

// Advertising payload budget: flags (3) and the 16-bit service list (4)
// leave room for a name of maxNameLen bytes after its 2-byte header.
const (
	maxAdvLen  = 31
	maxNameLen = maxAdvLen - 3 - 4 - 2
)

// Advertisement is handed to the radio on every advertise cycle. The stack
// builds the payload from it: flags 0x06, the 16-bit Service list and the
// complete local Name.
type Advertisement struct {
	Name    string
	Service uint16
}

// NewAdvertisement cuts name to what fits in one advertising packet.
func NewAdvertisement(name string) Advertisement {
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return Advertisement{Name: name, Service: AdvertisedService}
}
