package store

import (
	"errors"

	"github.com/jlin2026/campusmarket/internal/api"
)

// Result is the uniform outcome of every store method. Methods never
// return errors to callers; pages render Message/Warning as-is.
type Result struct {
	Success bool
	Message string
	Warning string
}

// User-facing messages. Kept in the UI language of the original product.
const (
	MsgNotLoggedIn       = "请先登录"
	MsgConnectFailed     = "无法连接到服务器"
	MsgServerFailed      = "服务器处理失败"
	MsgLoginFailed       = "登录失败"
	MsgEmptyMessage      = "消息不能为空"
	MsgMissingFields     = "请填写完整信息"
	MsgBadPrice          = "价格格式不正确"
	MsgImageUploadFailed = "发布成功，但图片上传失败"
)

func ok() Result {
	return Result{Success: true}
}

func okMsg(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Message: message}
}

// failFrom maps an api error onto the taxonomy the pages expect:
// connectivity problems get the generic message, backend-reported failures
// surface the backend's own text, anything else the fallback.
func failFrom(err error, fallback string) Result {
	if errors.Is(err, api.ErrUnavailable) {
		return fail(MsgConnectFailed)
	}
	var be *api.BackendError
	if errors.As(err, &be) && be.Message != "" {
		return fail(be.Message)
	}
	return fail(fallback)
}
