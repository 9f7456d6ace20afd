package intcode

import (
	"fmt"
	"strings"
)

// Opcode is the two low decimal digits of a fetched instruction.
type Opcode int64

const (
	OpAdd         Opcode = 1
	OpMultiply    Opcode = 2
	OpInput       Opcode = 3
	OpOutput      Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

// Mode is a parameter addressing mode.
type Mode int64

const (
	Position  Mode = 0 // memory address
	Immediate Mode = 1 // literal value
	Relative  Mode = 2 // address relative to the relative base
)

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Name   string // mnemonic
	Params int    // number of parameters
	Writes bool   // last parameter is a write target
}

var opcodeTable = map[Opcode]OpcodeInfo{
	OpAdd:         {"ADD", 3, true},
	OpMultiply:    {"MUL", 3, true},
	OpInput:       {"IN", 1, true},
	OpOutput:      {"OUT", 1, false},
	OpJumpIfTrue:  {"JNZ", 2, false},
	OpJumpIfFalse: {"JZ", 2, false},
	OpLessThan:    {"LT", 3, true},
	OpEquals:      {"EQ", 3, true},
	OpAdjustBase:  {"ARB", 1, false},
	OpHalt:        {"HALT", 0, false},
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() (OpcodeInfo, bool) {
	info, ok := opcodeTable[op]
	return info, ok
}

func (op Opcode) Name() string {
	if info, ok := opcodeTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN_%d", int64(op))
}

// Arity is the number of parameters, 0 for unknown opcodes.
func (op Opcode) Arity() int {
	return opcodeTable[op].Params
}

func (op Opcode) String() string {
	return op.Name()
}

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int64(m))
}

// Instruction is one decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Decode splits a fetched value into its opcode and three parameter modes,
// least significant mode first. Modes are not validated here.
func Decode(value int64) Instruction {
	ins := Instruction{Op: Opcode(value % 100)}
	rest := value / 100
	for i := range ins.Modes {
		if rest == 0 {
			break
		}
		ins.Modes[i] = Mode(rest % 10)
		rest /= 10
	}
	return ins
}

// Recognized reports whether ins names a defined instruction. Mode digits
// past the opcode's arity must be zero.
func (ins Instruction) Recognized() bool {
	info, ok := opcodeTable[ins.Op]
	if !ok {
		return false
	}
	for _, m := range ins.Modes[info.Params:] {
		if m != Position {
			return false
		}
	}
	return true
}

// Disassemble renders a program image one instruction per line. Words that
// do not decode to a recognized instruction are shown as data.
func Disassemble(program []int64) []string {
	var lines []string
	for pc := 0; pc < len(program); {
		line, n := DisassembleAt(program, pc)
		lines = append(lines, line)
		pc += n
	}
	return lines
}

// DisassembleAt renders the instruction at pc and returns how many words it
// spans.
func DisassembleAt(program []int64, pc int) (string, int) {
	ins := Decode(program[pc])
	if !ins.Recognized() {
		return fmt.Sprintf("%04d  DATA %d", pc, program[pc]), 1
	}
	info, _ := ins.Op.Info()
	if pc+info.Params >= len(program) {
		return fmt.Sprintf("%04d  DATA %d", pc, program[pc]), 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%04d  %s", pc, info.Name)
	for i := 0; i < info.Params; i++ {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(operand(ins.Modes[i], program[pc+1+i]))
	}
	return b.String(), 1 + info.Params
}

func operand(m Mode, v int64) string {
	switch m {
	case Position:
		return fmt.Sprintf("[%d]", v)
	case Immediate:
		return fmt.Sprintf("%d", v)
	case Relative:
		return fmt.Sprintf("[rb%+d]", v)
	}
	return fmt.Sprintf("?%d(%d)", int64(m), v)
}
