// services/hal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"uartecho-go/errcode"
	"uartecho-go/services/hal/halcore"
	"uartecho-go/types"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	writes  int
}

func NewFakePin(n int) *FakePin { return &FakePin{number: n} }

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// An idle pulled-up input reads high.
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// Drive sets the level seen on an input, as external wiring would.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Pull reports the configured input bias.
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// Writes counts Set calls.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	return f.Get(n), true
}

// Get exposes the underlying *FakePin for tests, creating it on first use.
func (f *HostPinFactory) Get(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = NewFakePin(n)
		f.pins[n] = p
	}
	return p
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory { return &HostPinFactory{} }

// ----------------------------- UART (host) -----------------------------------

// FakeUART implements halcore.UART with a scripted RX queue and captured TX.
type FakeUART struct {
	mu      sync.Mutex
	rx      []byte
	tx      []byte
	txBusy  bool
	enabled bool
	configs []types.UARTConfig
	enables int
}

func NewFakeUART() *FakeUART { return &FakeUART{} }

// Inject queues bytes as if they arrived on the wire.
func (u *FakeUART) Inject(b ...byte) {
	u.mu.Lock()
	u.rx = append(u.rx, b...)
	u.mu.Unlock()
}

// SetTxBusy holds the transmit flag low while busy is true.
func (u *FakeUART) SetTxBusy(busy bool) {
	u.mu.Lock()
	u.txBusy = busy
	u.mu.Unlock()
}

// Sent returns a copy of every byte written so far.
func (u *FakeUART) Sent() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]byte(nil), u.tx...)
}

// Configs returns every configuration applied, oldest first.
func (u *FakeUART) Configs() []types.UARTConfig {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]types.UARTConfig(nil), u.configs...)
}

// Enables counts Enable calls.
func (u *FakeUART) Enables() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enables
}

// Pending reports how many injected bytes are still unread.
func (u *FakeUART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx)
}

func (u *FakeUART) Configure(cfg types.UARTConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	u.mu.Lock()
	u.configs = append(u.configs, cfg)
	u.enabled = false
	u.mu.Unlock()
	return nil
}

func (u *FakeUART) Enable() {
	u.mu.Lock()
	u.enabled = len(u.configs) > 0
	u.enables++
	u.mu.Unlock()
}

func (u *FakeUART) RxReady() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enabled && len(u.rx) > 0
}

func (u *FakeUART) ReadByte() (byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.rx) == 0 {
		return 0, errcode.Timeout
	}
	b := u.rx[0]
	u.rx = u.rx[1:]
	return b, nil
}

func (u *FakeUART) TxReady() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enabled && !u.txBusy
}

func (u *FakeUART) WriteByte(b byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.enabled {
		return errcode.PortClosed
	}
	u.tx = append(u.tx, b)
	return nil
}

// HostUARTFactory hands out one FakeUART per id.
type HostUARTFactory struct {
	mu    sync.Mutex
	ports map[string]*FakeUART
}

func (f *HostUARTFactory) ByID(id string) (halcore.UART, bool) {
	return f.Get(id), true
}

// Get exposes the underlying *FakeUART for tests, creating it on first use.
func (f *HostUARTFactory) Get(id string) *FakeUART {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ports == nil {
		f.ports = make(map[string]*FakeUART)
	}
	u, ok := f.ports[id]
	if !ok {
		u = NewFakeUART()
		f.ports[id] = u
	}
	return u
}

// DefaultUARTFactory provides a host UART factory backed by fakes.
func DefaultUARTFactory() halcore.UARTFactory { return &HostUARTFactory{} }
