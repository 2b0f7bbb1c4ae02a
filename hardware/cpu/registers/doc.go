// Package registers implements the register types found in the CPU: the
// program counter, the status register, the stack pointer, and the 8 bit
// accumulator type used for A, X and Y.
//
// The 8 bit registers implemented as the Register type, define all the basic
// operations available to the CPU: load, add, subtract, logical operations
// and shifts/rotates. In addition it implements the tests required for
// status updates: is the value zero, is the number negative or is the
// overflow bit set.
//
// The program counter by comparison is 16 bits wide and defines only the
// load and add operations.
//
// The stack pointer is 8 bits wide like Register but wraps within page one
// ($0100-$01FF) on push and pull, rather than across the full 8-bit range.
//
// The status register is implemented as a series of flags. Setting of flags
// is done directly. For instance, in the CPU, we might have this sequence of
// function calls:
//
//	a.Load(10)
//	a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//
// In this case, the zero flag in the status register will be false.
package registers
