package disasm

import (
	"github.com/retroenv/gbgodisasm/internal/arch/sm83"
	"github.com/retroenv/gbgodisasm/internal/cartridge"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations collects the file offsets of all branch destinations that are
// the start of an instruction of the listing.
func (dis *Disasm) processJumpDestinations(lines []Line) {
	starts := set.New[int]()
	for _, line := range lines {
		if line.Kind == LineInstruction {
			starts.Add(line.Offset)
		}
	}

	for _, line := range lines {
		if line.Target < 0 {
			continue
		}

		offset, ok := targetOffset(line.Offset, line.Target, len(dis.cart.Data))
		if !ok {
			continue
		}
		if !starts.Contains(offset) {
			dis.logger.Debug("Branch into instruction or data",
				log.String("instruction", line.Instruction.Name()),
				log.Hex("source", line.Offset),
				log.Hex("target", line.Target))
			continue
		}

		if !dis.branchDestinations.Contains(offset) {
			dis.branchDestinations.Add(offset)
			dis.labelCount++
		}
		flow := line.Instruction.Flow
		if flow == sm83.FlowCall || flow == sm83.FlowRestart {
			dis.callDestinations.Add(offset)
		}
	}
}

// targetOffset maps a branch destination address to a file offset of a buffer with the
// given size. Destinations in the switchable window resolve to the bank of the source,
// sources in bank 0 see bank 1 there.
func targetOffset(source, target, size int) (int, bool) {
	var offset int
	switch {
	case target < cartridge.BankSize:
		offset = target

	case target < 2*cartridge.BankSize:
		bank := max(source/cartridge.BankSize, 1)
		offset = bank*cartridge.BankSize + target - cartridge.BankSize

	default:
		return 0, false // RAM or I/O
	}

	if offset >= size {
		return 0, false
	}
	return offset, true
}
