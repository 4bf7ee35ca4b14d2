package openrgb

import (
	"encoding/binary"
	"fmt"
	"io"
)

// The OpenRGB SDK server speaks a simple framed protocol: a 16 byte header
// (magic, device index, command id, payload length, all little-endian)
// followed by the payload. This client uses protocol version 0 framing,
// which every OpenRGB release understands.

const (
	headerSize = 16

	cmdRequestControllerCount = 0
	cmdRequestControllerData  = 1
	cmdDeviceListUpdated      = 100
	cmdSetClientName          = 50
	cmdUpdateLEDs             = 1050
)

var magic = [4]byte{'O', 'R', 'G', 'B'}

// header is the fixed packet preamble.
type header struct {
	DeviceID uint32
	Command  uint32
	Length   uint32
}

func writePacket(w io.Writer, h header, payload []byte) error {
	buf := make([]byte, headerSize, headerSize+len(payload))
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.DeviceID)
	binary.LittleEndian.PutUint32(buf[8:12], h.Command)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(payload)))
	buf = append(buf, payload...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write packet: %w", err)
	}
	return nil
}

func readPacket(r io.Reader) (header, []byte, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return header{}, nil, fmt.Errorf("read packet header: %w", err)
	}
	if [4]byte(raw[0:4]) != magic {
		return header{}, nil, fmt.Errorf("bad packet magic %q", raw[0:4])
	}

	h := header{
		DeviceID: binary.LittleEndian.Uint32(raw[4:8]),
		Command:  binary.LittleEndian.Uint32(raw[8:12]),
		Length:   binary.LittleEndian.Uint32(raw[12:16]),
	}

	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return header{}, nil, fmt.Errorf("read packet payload: %w", err)
	}
	return h, payload, nil
}

// buffer is a sticky-error cursor over a received payload. Once a read runs
// past the end, every subsequent read reports failure and returns zero
// values, so parse code can check the error once at the end.
type buffer struct {
	data []byte
	off  int
	err  error
}

func (b *buffer) take(n int) []byte {
	if b.err != nil {
		return nil
	}
	if b.off+n > len(b.data) {
		b.err = fmt.Errorf("truncated payload: need %d bytes at offset %d of %d", n, b.off, len(b.data))
		return nil
	}
	out := b.data[b.off : b.off+n]
	b.off += n
	return out
}

func (b *buffer) u16() uint16 {
	raw := b.take(2)
	if raw == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(raw)
}

func (b *buffer) u32() uint32 {
	raw := b.take(4)
	if raw == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(raw)
}

func (b *buffer) i32() int32 {
	return int32(b.u32())
}

// str reads an OpenRGB string: u16 length (including the trailing NUL)
// followed by the bytes themselves.
func (b *buffer) str() string {
	n := int(b.u16())
	raw := b.take(n)
	if raw == nil || n == 0 {
		return ""
	}
	// Strip the NUL terminator.
	return string(raw[:n-1])
}

func (b *buffer) skip(n int) {
	b.take(n)
}
