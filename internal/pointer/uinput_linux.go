//go:build linux

package pointer

// Virtual absolute pointer on /dev/uinput. The device looks like a USB
// tablet (ABS_X/ABS_Y + buttons + wheel), which every compositor maps
// onto the whole virtual desktop.

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

const uinputPath = "/dev/uinput"

// Linux input event codes
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	btnLeft  = 0x110
	btnRight = 0x111

	relWheel      = 0x08
	relWheelHiRes = 0x0b

	absX = 0x00
	absY = 0x01

	busVirtual = 0x06
)

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// struct uinput_setup
type uinputSetup struct {
	ID           inputID
	Name         [80]byte
	FFEffectsMax uint32
}

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// struct uinput_abs_setup
type uinputAbsSetup struct {
	Code    uint16
	_       [2]byte
	AbsInfo absInfo
}

// struct input_event; timeval size follows the platform word size
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

var (
	uiDevCreate  = ioc(iocNone, 'U', 1, 0)
	uiDevDestroy = ioc(iocNone, 'U', 2, 0)
	uiDevSetup   = ioc(iocWrite, 'U', 3, uint32(unsafe.Sizeof(uinputSetup{})))
	uiAbsSetup   = ioc(iocWrite, 'U', 4, uint32(unsafe.Sizeof(uinputAbsSetup{})))
	uiSetEvBit   = ioc(iocWrite, 'U', 100, uint32(unsafe.Sizeof(int32(0))))
	uiSetKeyBit  = ioc(iocWrite, 'U', 101, uint32(unsafe.Sizeof(int32(0))))
	uiSetRelBit  = ioc(iocWrite, 'U', 102, uint32(unsafe.Sizeof(int32(0))))
	uiSetAbsBit  = ioc(iocWrite, 'U', 103, uint32(unsafe.Sizeof(int32(0))))
)

func ioctl(fd int, req uintptr, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg); errno != 0 {
		return errno
	}
	return nil
}

func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// UinputDriver injects pointer events through a virtual input device.
type UinputDriver struct {
	*tracker
	mu     sync.Mutex
	f      *os.File
	rect   screen.Rect
	wheel  wheel
	logger *zap.Logger
}

// NewUinput creates the virtual device. The caller needs write access to
// /dev/uinput (root or the input group on most distributions).
func NewUinput(rect screen.Rect, logger *zap.Logger) (Driver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.OpenFile(uinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}
	if err := setupDevice(int(f.Fd()), rect); err != nil {
		f.Close()
		return nil, err
	}

	d := &UinputDriver{
		tracker: newTracker(rect),
		f:       f,
		rect:    rect,
		logger:  logger.Named("uinput"),
	}
	d.logger.Info("virtual pointer created", zap.Stringer("screen", rect))
	return d, nil
}

func setupDevice(fd int, rect screen.Rect) error {
	bits := []struct {
		req  uintptr
		code int
		what string
	}{
		{uiSetEvBit, evKey, "EV_KEY"},
		{uiSetEvBit, evRel, "EV_REL"},
		{uiSetEvBit, evAbs, "EV_ABS"},
		{uiSetEvBit, evSyn, "EV_SYN"},
		{uiSetKeyBit, btnLeft, "BTN_LEFT"},
		{uiSetKeyBit, btnRight, "BTN_RIGHT"},
		{uiSetRelBit, relWheel, "REL_WHEEL"},
		{uiSetRelBit, relWheelHiRes, "REL_WHEEL_HI_RES"},
		{uiSetAbsBit, absX, "ABS_X"},
		{uiSetAbsBit, absY, "ABS_Y"},
	}
	for _, b := range bits {
		if err := ioctl(fd, b.req, uintptr(b.code)); err != nil {
			return fmt.Errorf("uinput enable %s: %w", b.what, err)
		}
	}

	for _, axis := range []struct {
		code uint16
		max  int
	}{
		{absX, rect.Width - 1},
		{absY, rect.Height - 1},
	} {
		abs := uinputAbsSetup{Code: axis.code, AbsInfo: absInfo{Min: 0, Max: int32(axis.max)}}
		if err := ioctlPtr(fd, uiAbsSetup, unsafe.Pointer(&abs)); err != nil {
			return fmt.Errorf("uinput abs setup %d: %w", axis.code, err)
		}
	}

	setup := uinputSetup{ID: inputID{Bustype: busVirtual, Vendor: 0x1209, Product: 0x6770, Version: 1}}
	copy(setup.Name[:], "gyro-pointer")
	if err := ioctlPtr(fd, uiDevSetup, unsafe.Pointer(&setup)); err != nil {
		return fmt.Errorf("uinput dev setup: %w", err)
	}
	if err := ioctl(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("uinput dev create: %w", err)
	}
	return nil
}

// Apply writes the events for e followed by a SYN_REPORT.
func (d *UinputDriver) Apply(e mapping.Emission) error {
	var events []inputEvent
	switch e.Kind {
	case mapping.EmitNone:
		return nil
	case mapping.EmitMoveAbsolute, mapping.EmitMoveRelative:
		x := int(d.rect.ClampX(float64(e.X)))
		y := int(d.rect.ClampY(float64(e.Y)))
		events = append(events,
			inputEvent{Type: evAbs, Code: absX, Value: int32(x - d.rect.X)},
			inputEvent{Type: evAbs, Code: absY, Value: int32(y - d.rect.Y)},
		)
		d.set(x, y)
	case mapping.EmitPress, mapping.EmitRelease:
		value := int32(0)
		if e.Kind == mapping.EmitPress {
			value = 1
		}
		events = append(events, inputEvent{Type: evKey, Code: buttonCode(e.Button), Value: value})
	case mapping.EmitScroll:
		d.mu.Lock()
		hiRes, detents := d.wheel.step(e.Scroll)
		d.mu.Unlock()
		if hiRes == 0 && detents == 0 {
			return nil
		}
		events = append(events, inputEvent{Type: evRel, Code: relWheelHiRes, Value: hiRes})
		if detents != 0 {
			events = append(events, inputEvent{Type: evRel, Code: relWheel, Value: detents})
		}
	}
	events = append(events, inputEvent{Type: evSyn, Code: synReport})
	return d.write(events)
}

func buttonCode(b mapping.Button) uint16 {
	if b == mapping.ButtonLeft {
		return btnLeft
	}
	return btnRight
}

func (d *UinputDriver) write(events []inputEvent) error {
	size := int(unsafe.Sizeof(inputEvent{}))
	buf := make([]byte, 0, len(events)*size)
	for i := range events {
		buf = append(buf, unsafe.Slice((*byte)(unsafe.Pointer(&events[i])), size)...)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.f.Write(buf); err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	return nil
}

// Close destroys the virtual device.
func (d *UinputDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := ioctl(int(d.f.Fd()), uiDevDestroy, 0); err != nil {
		d.logger.Warn("uinput destroy failed", zap.Error(err))
	}
	return d.f.Close()
}
