package service

import (
	"fmt"

	"github.com/pawhaven/internal/logger"
)

type postCommitHook struct {
	name string
	fn   func() error
}

// postCommitHooks 事务提交后执行的副作用，失败只记录日志，不影响已提交的结果
type postCommitHooks struct {
	hooks []postCommitHook
}

func (h *postCommitHooks) add(name string, fn func() error) {
	if fn == nil {
		return
	}
	h.hooks = append(h.hooks, postCommitHook{name: name, fn: fn})
}

// run 依次执行，返回失败数量
func (h *postCommitHooks) run(kv ...interface{}) int {
	failed := 0
	for _, hook := range h.hooks {
		if err := runHookSafely(hook.fn); err != nil {
			failed++
			fields := append([]interface{}{"hook", hook.name, "error", err}, kv...)
			logger.Warnw("order_post_commit_hook_failed", fields...)
		}
	}
	h.hooks = nil
	return failed
}

func runHookSafely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
