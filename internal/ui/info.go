package ui

import "time"

const flashTTL = 5 * time.Second

// flash is the transient message shown under the list.
type flash struct {
	msg   string
	until time.Time
}

func (f *flash) expired(now time.Time) bool {
	return !f.until.IsZero() && now.After(f.until)
}

func (f *flash) reset() { *f = flash{} }

func (m *Model) setInfo(message string) {
	m.info = flash{msg: message, until: time.Now().Add(flashTTL)}
}

// clearInfo drops the message once it has been visible for flashTTL.
func (m *Model) clearInfo() {
	if m.info.msg != "" && !time.Now().Before(m.info.until) {
		m.info.reset()
	}
}

func (m *Model) forceClearInfo() { m.info.reset() }

func (m *Model) currentInfo() string {
	if m.info.expired(time.Now()) {
		m.info.reset()
	}
	return m.info.msg
}
