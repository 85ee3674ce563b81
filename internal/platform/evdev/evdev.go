//go:build drm

// Package evdev is the embedded input backend. It reads the panel's
// gpio-keys device, rotary encoder, and touchscreen directly from
// /dev/input event nodes.
package evdev

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/llz-project/llz/internal/platform"
)

// Linux input event types and codes used by the panel.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	relDial = 0x07

	absX = 0x00
	absY = 0x01

	btnTouch = 0x14a

	keyBack  = 158
	keyEnter = 28
	keyUp    = 103
	keyDown  = 108
	keySysrq = 99
	keyF1    = 59
	keyF2    = 60
	keyF3    = 61
	keyF4    = 62
	keyF5    = 63
)

// keyBits maps the gpio-keys codes onto button bits.
var keyBits = map[uint16]platform.ButtonBits{
	keyBack:  platform.BitBack,
	keyEnter: platform.BitSelect,
	keyUp:    platform.BitUp,
	keyDown:  platform.BitDown,
	keySysrq: platform.BitScreenshot,
	keyF1:    platform.BitAux1,
	keyF2:    platform.BitAux2,
	keyF3:    platform.BitAux3,
	keyF4:    platform.BitAux4,
	keyF5:    platform.BitAux5,
}

// eventSize is sizeof(struct input_event) with a 64-bit timeval.
const eventSize = 24

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding, Linux _IOC macro.
func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<30 | size<<16 | typ<<8 | nr)
}

func eviocgabs(code int) uintptr {
	return ioc(2, uint32('E'), uint32(0x40+code), uint32(unsafe.Sizeof(absInfo{})))
}

func getAbsInfo(fd, code int) (absInfo, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgabs(code), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

// device is one nonblocking event node with a partial-read buffer.
type device struct {
	fd  int
	buf []byte
}

func openDevice(path string) (*device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &device{fd: fd}, nil
}

func (d *device) close() {
	unix.Close(d.fd)
}

// drain reads all pending events, invoking cb per event. EAGAIN means no
// events are pending and is not an error.
func (d *device) drain(cb func(etype, code uint16, value int32)) error {
	chunk := make([]byte, 64*eventSize)
	for {
		n, err := unix.Read(d.fd, chunk)
		if err == unix.EAGAIN {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		d.buf = append(d.buf, chunk[:n]...)
		for len(d.buf) >= eventSize {
			ev := d.buf[:eventSize]
			d.buf = d.buf[eventSize:]
			etype := binary.LittleEndian.Uint16(ev[16:18])
			code := binary.LittleEndian.Uint16(ev[18:20])
			value := int32(binary.LittleEndian.Uint32(ev[20:24]))
			cb(etype, code, value)
		}
	}
}

// Options names the event nodes. The defaults match the panel's device
// tree labels under /dev/input/by-path.
type Options struct {
	ButtonsPath string
	EncoderPath string
	TouchPath   string
}

// Shim polls the three event nodes and presents them through the platform
// shim contract.
type Shim struct {
	buttons *device
	encoder *device
	touch   *device

	bits    platform.ButtonBits
	detents int

	touchDown  bool
	rawX, rawY int32
	xMin, xMax int32
	yMin, yMax int32
}

// Open opens all three event nodes. Any failure closes what was opened.
func Open(opts Options) (*Shim, error) {
	s := &Shim{xMax: 1, yMax: 1}

	var err error
	if s.buttons, err = openDevice(opts.ButtonsPath); err != nil {
		return nil, err
	}
	if s.encoder, err = openDevice(opts.EncoderPath); err != nil {
		s.Close()
		return nil, err
	}
	if s.touch, err = openDevice(opts.TouchPath); err != nil {
		s.Close()
		return nil, err
	}

	if info, aerr := getAbsInfo(s.touch.fd, absX); aerr == nil && info.Max > info.Min {
		s.xMin, s.xMax = info.Min, info.Max
	}
	if info, aerr := getAbsInfo(s.touch.fd, absY); aerr == nil && info.Max > info.Min {
		s.yMin, s.yMax = info.Min, info.Max
	}
	return s, nil
}

// Close releases the event nodes.
func (s *Shim) Close() {
	for _, d := range []*device{s.buttons, s.encoder, s.touch} {
		if d != nil {
			d.close()
		}
	}
	s.buttons, s.encoder, s.touch = nil, nil, nil
}

func (s *Shim) PollButtons() (platform.ButtonBits, error) {
	err := s.buttons.drain(func(etype, code uint16, value int32) {
		if etype != evKey {
			return
		}
		bit, ok := keyBits[code]
		if !ok {
			return
		}
		if value != 0 {
			s.bits |= bit
		} else {
			s.bits &^= bit
		}
	})
	return s.bits, err
}

func (s *Shim) PollEncoder() (int, error) {
	err := s.encoder.drain(func(etype, code uint16, value int32) {
		if etype == evRel && code == relDial {
			s.detents += int(value)
		}
	})
	d := s.detents
	s.detents = 0
	return d, err
}

func (s *Shim) PollTouch() (platform.TouchPoint, error) {
	err := s.touch.drain(func(etype, code uint16, value int32) {
		switch {
		case etype == evKey && code == btnTouch:
			s.touchDown = value != 0
		case etype == evAbs && code == absX:
			s.rawX = value
		case etype == evAbs && code == absY:
			s.rawY = value
		}
	})
	if !s.touchDown {
		return platform.TouchPoint{}, err
	}
	return platform.TouchPoint{
		Present: true,
		X:       scale(s.rawX, s.xMin, s.xMax, platform.DisplayWidth),
		Y:       scale(s.rawY, s.yMin, s.yMax, platform.DisplayHeight),
	}, err
}

// scale maps a raw axis value onto the logical display range.
func scale(v, min, max int32, size int) int {
	if max <= min {
		return 0
	}
	out := int(int64(v-min) * int64(size-1) / int64(max-min))
	if out < 0 {
		out = 0
	}
	if out >= size {
		out = size - 1
	}
	return out
}
