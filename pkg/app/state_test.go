package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource(t *testing.T) {
	var r Resource[int]
	assert.Equal(t, NotLoaded, r.Phase())
	_, ok := r.Value()
	assert.False(t, ok)

	r = Pending[int]()
	assert.True(t, r.IsLoading())

	r = Ready(3)
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Empty(t, r.Reason())

	r = Failure[int]("boom")
	assert.True(t, r.IsFailed())
	assert.Equal(t, "boom", r.Reason())
	_, ok = r.Value()
	assert.False(t, ok)
}

func TestKeyedSequenceGuard(t *testing.T) {
	var k Keyed
	first, ok := k.Begin("a", "wait")
	assert.True(t, ok)
	_, ok = k.Begin("a", "wait")
	assert.False(t, ok, "already loading")

	assert.True(t, k.Finish("a", first, Loaded, "done"))
	second, ok := k.Begin("a", "wait")
	assert.True(t, ok)
	assert.Greater(t, second, first)

	assert.False(t, k.Finish("a", first, Loaded, "late"))
	assert.Equal(t, "wait", k.Get("a").Text)
	assert.True(t, k.Clear("a", second))
	assert.Equal(t, NotLoaded, k.Get("a").Phase)

	third, _ := k.Begin("b", "")
	k.Reset()
	assert.Zero(t, k.Len())
	assert.False(t, k.Finish("b", third, Loaded, "x"))
	fourth, _ := k.Begin("b", "")
	assert.Greater(t, fourth, third)
}

func TestNoticeSlot(t *testing.T) {
	var s NoticeSlot
	_, ok := s.Current()
	assert.False(t, ok)

	s.Show("One", "first", NoticeSuccess)
	s.Show("Two", "second", "bogus")
	n, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, Notice{Open: true, Title: "Two", Message: "second", Type: NoticeInfo}, n)

	s.Dismiss()
	assert.False(t, s.IsOpen())
}

func TestParseNoticeType(t *testing.T) {
	for in, want := range map[string]NoticeType{
		"info":    NoticeInfo,
		"success": NoticeSuccess,
		"ERROR":   NoticeError,
		"confirm": NoticeConfirm,
		"warning": NoticeInfo,
		"":        NoticeInfo,
	} {
		assert.Equal(t, want, ParseNoticeType(in), in)
	}
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, ValidatePeriod("2024-01-31", "2024-02-01"))
	assert.NoError(t, ValidatePeriod("2024-02-01", "2024-02-01"))
	err := ValidatePeriod("2024-02-02", "2024-02-01")
	assert.True(t, IsValidation(err))
	err = ValidatePeriod("2024-13-01", "2024-12-01")
	assert.EqualError(t, err, "Dates must use the YYYY-MM-DD format.")
}
