// Package openrgb implements a minimal client for the OpenRGB SDK server,
// enough to enumerate RGB controllers and push a single color to one of
// them. OpenRGB (https://openrgb.org/) handles the actual hardware access.
package openrgb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

const (
	// DefaultAddress is where a locally running OpenRGB SDK server listens.
	DefaultAddress = "127.0.0.1:6742"

	ioTimeout = 5 * time.Second
)

var (
	// ErrNotConnected is returned when an operation is attempted on a
	// closed client.
	ErrNotConnected = errors.New("not connected to OpenRGB server")
	// ErrNoSuchDevice is returned when no controller of the requested
	// type exists.
	ErrNoSuchDevice = errors.New("no device of requested type")
)

// Client is a connection to an OpenRGB SDK server. All requests are
// serialized; the daemon issues one at a time anyway.
type Client struct {
	mu        sync.Mutex
	conn      net.Conn
	connected bool
}

// Connect dials the OpenRGB SDK server and registers the given client name.
// An empty addr falls back to DefaultAddress.
func Connect(addr, name string) (*Client, error) {
	if addr == "" {
		addr = DefaultAddress
	}
	conn, err := net.DialTimeout("tcp", addr, ioTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to OpenRGB server at %s: %w", addr, err)
	}

	c := newClient(conn)
	if name != "" {
		if err := c.setName(name); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return c, nil
}

func newClient(conn net.Conn) *Client {
	return &Client{conn: conn, connected: true}
}

// Close tears down the connection. The server restores device control on
// disconnect.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false
	return c.conn.Close()
}

// ControllerCount asks the server how many RGB controllers it manages.
func (c *Client) ControllerCount() (int, error) {
	payload, err := c.request(0, cmdRequestControllerCount, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) < 4 {
		return 0, fmt.Errorf("controller count reply too short: %d bytes", len(payload))
	}
	return int(binary.LittleEndian.Uint32(payload)), nil
}

// Controllers enumerates all controllers in server order.
func (c *Client) Controllers() ([]Controller, error) {
	count, err := c.ControllerCount()
	if err != nil {
		return nil, err
	}

	controllers := make([]Controller, 0, count)
	for i := 0; i < count; i++ {
		payload, err := c.request(uint32(i), cmdRequestControllerData, nil)
		if err != nil {
			return nil, err
		}
		ctrl, err := parseController(i, payload)
		if err != nil {
			return nil, fmt.Errorf("parse controller %d: %w", i, err)
		}
		controllers = append(controllers, ctrl)
	}
	return controllers, nil
}

// FirstOfType returns a handle to the first controller with the given
// capability tag, in server enumeration order.
func (c *Client) FirstOfType(t DeviceType) (*Device, error) {
	controllers, err := c.Controllers()
	if err != nil {
		return nil, err
	}
	for _, ctrl := range controllers {
		if ctrl.Type == t {
			return &Device{client: c, ctrl: ctrl}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchDevice, t)
}

// Clear sets every LED on every controller to black, so the lighting is in
// a known state before the daemon takes over.
func (c *Client) Clear() error {
	controllers, err := c.Controllers()
	if err != nil {
		return err
	}
	for _, ctrl := range controllers {
		if err := c.updateLEDs(ctrl, 0, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// setName registers a friendly client name with the server. No reply.
func (c *Client) setName(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	payload := append([]byte(name), 0)
	c.conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	return writePacket(c.conn, header{Command: cmdSetClientName}, payload)
}

// updateLEDs pushes one uniform color to every LED of a controller. No reply.
func (c *Client) updateLEDs(ctrl Controller, r, g, b uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}

	payload := encodeUpdateLEDs(ctrl.NumLEDs, r, g, b)
	c.conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	if err := writePacket(c.conn, header{DeviceID: uint32(ctrl.ID), Command: cmdUpdateLEDs}, payload); err != nil {
		return fmt.Errorf("update LEDs on %q: %w", ctrl.Name, err)
	}
	return nil
}

// encodeUpdateLEDs builds an UpdateLEDs payload: total data size, LED
// count, then one RGBColor (r, g, b, pad) per LED.
func encodeUpdateLEDs(numLEDs int, r, g, b uint8) []byte {
	size := 4 + 2 + numLEDs*4
	payload := make([]byte, size)
	binary.LittleEndian.PutUint32(payload[0:4], uint32(size))
	binary.LittleEndian.PutUint16(payload[4:6], uint16(numLEDs))
	for i := 0; i < numLEDs; i++ {
		off := 6 + i*4
		payload[off] = r
		payload[off+1] = g
		payload[off+2] = b
	}
	return payload
}

// request sends one command and waits for the matching reply, skipping any
// asynchronous device-list notifications the server interleaves.
func (c *Client) request(deviceID, command uint32, payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, ErrNotConnected
	}

	c.conn.SetDeadline(time.Now().Add(ioTimeout))
	defer c.conn.SetDeadline(time.Time{})

	if err := writePacket(c.conn, header{DeviceID: deviceID, Command: command}, payload); err != nil {
		return nil, err
	}

	for {
		h, reply, err := readPacket(c.conn)
		if err != nil {
			return nil, err
		}
		if h.Command == cmdDeviceListUpdated {
			continue
		}
		if h.Command != command {
			return nil, fmt.Errorf("unexpected reply command %d to request %d", h.Command, command)
		}
		return reply, nil
	}
}

// Device is a handle to one controller, bound at startup and held for the
// process lifetime.
type Device struct {
	client *Client
	ctrl   Controller
}

// Controller returns the controller metadata captured at enumeration time.
func (d *Device) Controller() Controller {
	return d.ctrl
}

// SetColor pushes one uniform color to all of the device's LEDs.
func (d *Device) SetColor(r, g, b uint8) error {
	return d.client.updateLEDs(d.ctrl, r, g, b)
}
