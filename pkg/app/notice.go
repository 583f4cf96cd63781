package app

import "strings"

// NoticeType selects the visual treatment of a notice.
type NoticeType string

const (
	NoticeInfo    NoticeType = "info"
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
	NoticeConfirm NoticeType = "confirm"
)

// ParseNoticeType maps s to a known type; anything unrecognized is info.
func ParseNoticeType(s string) NoticeType {
	switch t := NoticeType(strings.ToLower(strings.TrimSpace(s))); t {
	case NoticeSuccess, NoticeError, NoticeConfirm:
		return t
	}
	return NoticeInfo
}

// Notice is a titled message shown until dismissed.
type Notice struct {
	Open    bool
	Title   string
	Message string
	Type    NoticeType
}

// NoticeSlot holds at most one notice. Showing a new notice replaces the
// current one.
type NoticeSlot struct {
	current Notice
}

// Show opens a notice, replacing any notice already open.
func (s *NoticeSlot) Show(title, message string, t NoticeType) {
	s.current = Notice{Open: true, Title: title, Message: message, Type: ParseNoticeType(string(t))}
}

// Dismiss closes the notice.
func (s *NoticeSlot) Dismiss() {
	s.current = Notice{Type: NoticeInfo}
}

// Current returns the notice; ok is false when nothing is open.
func (s *NoticeSlot) Current() (Notice, bool) {
	return s.current, s.current.Open
}

// IsOpen reports whether a notice is showing.
func (s *NoticeSlot) IsOpen() bool { return s.current.Open }
