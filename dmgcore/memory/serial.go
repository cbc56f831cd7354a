package memory

import (
	"log/slog"

	"github.com/mharlton/dmgcore/dmgcore/addr"
	"github.com/mharlton/dmgcore/dmgcore/bit"
)

// Serial is a register-accurate stub of the link-cable port: it answers
// SB/SC reads and writes and completes transfers immediately, collecting
// outgoing bytes into a line that is logged when a zero or newline byte is
// sent, but never drives an actual second device. Link-cable
// traffic itself is out of scope; only the register contract is kept.
type Serial struct {
	sb, sc  byte
	pending bool
	line    []byte
	logger  *slog.Logger
}

func NewSerial() *Serial {
	return &Serial{logger: slog.Default()}
}

func (s *Serial) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc
	default:
		return 0xFF
	}
}

func (s *Serial) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeTransfer()
	}
}

func (s *Serial) maybeTransfer() {
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Debug("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	s.pending = true
}

func (s *Serial) Pending() bool { return s.pending }

func (s *Serial) ClearPending() bool {
	p := s.pending
	s.pending = false
	return p
}
