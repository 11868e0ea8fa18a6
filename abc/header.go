package abc

// ignoredTags are header fields that carry no playback information: title,
// composer, history, notes, lyrics and the like. '%' starts a comment and
// 'w' an aligned lyrics line.
const ignoredTags = "HIJNOPRSTUVWXYZ%w"

func isIgnoredTag(ch int) bool {
	for i := 0; i < len(ignoredTags); i++ {
		if int(ignoredTags[i]) == ch {
			return true
		}
	}
	return false
}

// separator consumes the field tag and the ':' and spaces that follow it.
func (p *Parser) separator() {
	p.scanner.Advance()
	p.scanner.SkipWhile(": ")
}

// fraction reads "n" or "n/d". A missing or zero denominator leaves the
// numerator alone.
func (p *Parser) fraction() (float64, bool) {
	s := p.scanner
	n, ok := s.Int()
	if !ok {
		return 0, false
	}
	v := float64(n)
	if s.Peek() == '/' {
		s.Advance()
		if d, ok := s.Int(); ok && d > 0 {
			v /= float64(d)
		}
	}
	return v, true
}

func (p *Parser) key() {
	p.log.Debug("handling header K (key)")
	p.scanner.SkipUntil("\n]")
	st := p.state
	p.log.Infof("header done: meter=%.4g note length=%.4g bpm=%d note duration=%.0fms",
		st.Meter, st.NoteLength, st.BPM, st.DefaultDurationMs)
}

func (p *Parser) meter() {
	p.log.Debug("handling header M (meter)")
	p.separator()
	s := p.scanner

	// Common time and cut time.
	if s.Peek() == 'C' {
		s.Advance()
		if s.Peek() == '|' {
			s.Advance()
			p.state.SetMeter(2.0 / 2)
		} else {
			p.state.SetMeter(4.0 / 4)
		}
		return
	}

	meter, ok := p.fraction()
	if !ok {
		p.log.Debugf("%s: meter without a value, keeping %.4g", s.Pos(), p.state.Meter)
		return
	}
	p.state.SetMeter(meter)
}

func (p *Parser) tempo() {
	p.log.Debug("handling header Q (tempo)")
	p.separator()
	s := p.scanner

	n, ok := s.Int()
	if s.Peek() != '/' {
		if !ok {
			p.log.Debugf("%s: tempo without a value, keeping %d bpm", s.Pos(), p.state.BPM)
			return
		}
		p.state.SetTempo(n, 0)
		return
	}

	// Q:a/b=bpm counts beats of length a/b.
	s.Advance()
	d, dok := s.Int()
	unit := 0.0
	if ok && dok && d > 0 {
		unit = float64(n) / float64(d)
	}
	s.SkipUntil("=\n")
	if s.Peek() != '=' {
		p.log.Debugf("%s: tempo without '=', keeping %d bpm", s.Pos(), p.state.BPM)
		return
	}
	s.Advance()
	s.SkipWhile(" ")
	bpm, _ := s.Int()
	p.state.SetTempo(bpm, unit)
}

func (p *Parser) noteLength() {
	p.log.Debug("handling header L (note length)")
	p.separator()
	length, ok := p.fraction()
	if !ok {
		p.log.Debugf("%s: note length without a value, keeping %.4g", p.scanner.Pos(), p.state.NoteLength)
		return
	}
	p.state.SetNoteLength(length)
}
