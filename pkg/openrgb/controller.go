package openrgb

// DeviceType is the capability tag OpenRGB assigns to each controller.
type DeviceType int32

// Device types as defined by the OpenRGB SDK.
const (
	DeviceMotherboard DeviceType = iota
	DeviceDRAM
	DeviceGPU
	DeviceCooler
	DeviceLEDStrip
	DeviceKeyboard
	DeviceMouse
	DeviceMousemat
	DeviceHeadset
	DeviceHeadsetStand
	DeviceGamepad
	DeviceLight
	DeviceSpeaker
	DeviceVirtual
	DeviceUnknown
)

func (t DeviceType) String() string {
	switch t {
	case DeviceMotherboard:
		return "motherboard"
	case DeviceDRAM:
		return "dram"
	case DeviceGPU:
		return "gpu"
	case DeviceCooler:
		return "cooler"
	case DeviceLEDStrip:
		return "ledstrip"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceMousemat:
		return "mousemat"
	case DeviceHeadset:
		return "headset"
	case DeviceHeadsetStand:
		return "headset stand"
	case DeviceGamepad:
		return "gamepad"
	case DeviceLight:
		return "light"
	case DeviceSpeaker:
		return "speaker"
	case DeviceVirtual:
		return "virtual"
	}
	return "unknown"
}

// Controller describes one RGB controller reported by the server. Only the
// fields the daemon needs survive parsing; modes and zones are skipped
// field-accurately to reach the LED list.
type Controller struct {
	ID          int
	Type        DeviceType
	Name        string
	Description string
	NumLEDs     int
}

// parseController decodes a protocol version 0 controller data payload.
func parseController(id int, payload []byte) (Controller, error) {
	b := &buffer{data: payload}

	b.u32() // data size, repeated from the header
	ctrl := Controller{
		ID:   id,
		Type: DeviceType(b.i32()),
	}
	ctrl.Name = b.str()
	ctrl.Description = b.str()
	b.str() // version
	b.str() // serial
	b.str() // location

	numModes := int(b.u16())
	b.i32() // active mode
	for i := 0; i < numModes; i++ {
		b.str() // mode name
		b.i32() // value
		// flags, speed min/max, colors min/max, speed, direction, color mode
		b.skip(8 * 4)
		numColors := int(b.u16())
		b.skip(numColors * 4)
	}

	numZones := int(b.u16())
	for i := 0; i < numZones; i++ {
		b.str()       // zone name
		b.i32()       // zone type
		b.skip(3 * 4) // leds min, leds max, leds count
		matrixLen := int(b.u16())
		b.skip(matrixLen)
	}

	numLEDs := int(b.u16())
	ctrl.NumLEDs = numLEDs
	for i := 0; i < numLEDs; i++ {
		b.str() // led name
		b.u32() // led value
	}

	if b.err != nil {
		return Controller{}, b.err
	}
	return ctrl, nil
}
