package classifier

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

// VendorSuccess is the SSPANEL "ret" value for an accepted request.
const VendorSuccess = 1

// Markers are the known phrases a site uses in human-readable results.
// Failure markers are checked first, then Already, then Success.
type Markers struct {
	Failure []string
	Already []string
	Success []string
}

// SSPanel markers. Success is signalled by ret, not by text.
var SSPanel = Markers{
	Already: []string{"签到过", "已签到", "已经签到", "already checked in"},
}

// Portal markers for the legacy VIP portal's result label.
var Portal = Markers{
	Failure: []string{"失败", "错误", "异常", "请先登录", "请登录", "过期", "未签", "没有签到", "请先签到"},
	Already: []string{"已签", "签到过", "今天已经签到"},
	Success: []string{"签到成功", "签到"},
}

// Classifier maps response text onto an Outcome using a fixed marker list.
// Text matching none of the markers is Unknown, which callers treat as failure.
type Classifier struct {
	markers Markers
}

// New creates a Classifier. Markers are normalized once up front.
func New(m Markers) *Classifier {
	return &Classifier{markers: Markers{
		Failure: normalizeAll(m.Failure),
		Already: normalizeAll(m.Already),
		Success: normalizeAll(m.Success),
	}}
}

// Text classifies a free-form result message.
func (c *Classifier) Text(s string) model.Outcome {
	s = Normalize(s)
	if s == "" {
		return model.Unknown
	}
	switch {
	case containsAny(s, c.markers.Failure):
		return model.Failure
	case containsAny(s, c.markers.Already):
		return model.AlreadyDone
	case containsAny(s, c.markers.Success):
		return model.Success
	}
	return model.Unknown
}

// Vendor classifies an SSPANEL JSON result. ret == 1 is success regardless of
// the message; otherwise an "already checked in" message still counts.
func (c *Classifier) Vendor(r model.VendorResult) model.Outcome {
	if r.Ret == VendorSuccess {
		return model.Success
	}
	out := c.Text(r.Msg)
	switch out {
	case model.AlreadyDone:
		return out
	case model.Unknown:
		if strings.TrimSpace(r.Msg) == "" {
			return model.Unknown
		}
	}
	return model.Failure
}

// Normalize applies NFKC (folding full-width forms), trims, and lowercases.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
