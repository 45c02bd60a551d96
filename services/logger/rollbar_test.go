package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/user"
)

func newTestLogger(debug bool) (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	conf := &core.Config{Env: "TEST", TestMode: true, Debug: debug}
	return NewRollbarLogger(log.New(&buf, "", 0), conf), &buf
}

func TestRollbarLogger(t *testing.T) {
	t.Run("prints the message and its args", func(t *testing.T) {
		l, buf := newTestLogger(false)
		l.Warn("saving course failed", errors.New("boom"), user.User{Email: "admin@example.com", Role: user.RoleAdmin})

		out := buf.String()
		assert.Contains(t, out, "WARN: saving course failed")
		assert.Contains(t, out, "boom")
		assert.Contains(t, out, "user: admin@example.com (admin)")
	})

	t.Run("debug only in debug mode", func(t *testing.T) {
		l, buf := newTestLogger(false)
		l.Debug("hidden")
		assert.Empty(t, buf.String())

		l, buf = newTestLogger(true)
		l.Debug("shown")
		assert.Contains(t, buf.String(), "DEBUG: shown")
	})

	t.Run("prepare drops the user from the reported args", func(t *testing.T) {
		l, _ := newTestLogger(false)
		extra := map[string]interface{}{"id": "c1"}
		args := l.prepare("msg", []interface{}{user.User{Email: "a@b.c"}, extra, user.User{Email: "d@e.f"}})
		assert.Equal(t, []interface{}{"msg", extra}, args)
	})
}
