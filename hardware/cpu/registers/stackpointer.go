package registers

import "fmt"

// StackPointer is the CPU's S register. Unlike a general purpose Register,
// pushes and pulls wrap within page one ($0100-$01FF) rather than across
// the full 8-bit range, which is the behaviour every push/pull micro-op
// relies on.
type StackPointer struct {
	value uint8
}

// NewStackPointer creates a new StackPointer with the given initial value.
func NewStackPointer(val uint8) *StackPointer {
	return &StackPointer{value: val}
}

func (s StackPointer) String() string {
	return fmt.Sprintf("SP=%#02x", s.value)
}

// Value returns the raw 8-bit stack pointer value.
func (s StackPointer) Value() uint8 {
	return s.value
}

// Address returns the full 16-bit stack address the pointer currently
// refers to, in page one.
func (s StackPointer) Address() uint16 {
	return 0x0100 | uint16(s.value)
}

// Load sets the stack pointer to an explicit value, used by reset and by
// save-state restoration.
func (s *StackPointer) Load(val uint8) {
	s.value = val
}

// Push returns the address a byte should be written to, then decrements
// the pointer, wrapping within page one.
func (s *StackPointer) Push() uint16 {
	addr := s.Address()
	s.value--
	return addr
}

// Pull increments the pointer, wrapping within page one, then returns the
// address a byte should be read from.
func (s *StackPointer) Pull() uint16 {
	s.value++
	return s.Address()
}

// Label implements the target interface used by debugger-style consumers.
func (s StackPointer) Label() string {
	return "SP"
}

// CurrentValue implements the target interface.
func (s StackPointer) CurrentValue() interface{} {
	return int(s.value)
}

// FormatValue implements the target interface.
func (s StackPointer) FormatValue(val interface{}) string {
	return fmt.Sprintf("%#02x", val)
}
