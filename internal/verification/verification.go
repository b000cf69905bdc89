// Package verification verifies that the listing represents the exact input.
package verification

import (
	"fmt"

	"github.com/retroenv/gbgodisasm/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// VerifyCoverage verifies that the lines are contiguous and that their bytes
// recreate the input buffer.
func VerifyCoverage(logger *log.Logger, code []byte, lines []disasm.Line) error {
	output := make([]byte, 0, len(code))
	for _, line := range lines {
		if line.Offset != len(output) {
			return fmt.Errorf("line at offset $%04x does not follow offset $%04x", line.Offset, len(output))
		}
		if len(line.Bytes) == 0 {
			return fmt.Errorf("line at offset $%04x is empty", line.Offset)
		}
		output = append(output, line.Bytes...)
	}

	if err := checkBufferEqual(logger, code, output); err != nil {
		return fmt.Errorf("listing mismatch: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
