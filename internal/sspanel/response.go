package sspanel

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

// body is the loosely typed vendor payload. Every field is optional and
// may come as a number or a string depending on the panel version.
type body struct {
	Ret     json.RawMessage            `json:"ret"`
	Msg     json.RawMessage            `json:"msg"`
	Headers map[string]json.RawMessage `json:"headers"`
}

// decodeResult normalizes a vendor response. Set-Cookie values come from the
// HTTP headers, or from a "headers"."set-cookie" array in the body when the
// panel echoes them there.
func decodeResult(resp *httpclient.Response) (model.VendorResult, error) {
	var b body
	if err := resp.DecodeJSON(&b); err != nil {
		return model.VendorResult{}, err
	}

	res := model.VendorResult{
		Ret: asInt(b.Ret),
		Msg: asString(b.Msg),
	}
	res.SetCookie = resp.Header.Values("Set-Cookie")
	if len(res.SetCookie) == 0 {
		for k, v := range b.Headers {
			if strings.EqualFold(k, "set-cookie") {
				res.SetCookie = asStrings(v)
			}
		}
	}
	return res, nil
}

// joinCookies keeps the name=value part of each Set-Cookie and joins them with ';'.
func joinCookies(setCookies []string) string {
	var pairs []string
	for _, sc := range setCookies {
		pair, _, _ := strings.Cut(sc, ";")
		if pair = strings.TrimSpace(pair); pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return strings.Join(pairs, ";")
}

func asInt(raw json.RawMessage) int {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return n
	case bool:
		if x {
			return 1
		}
	}
	return 0
}

func asString(raw json.RawMessage) string {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func asStrings(raw json.RawMessage) []string {
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var one string
	if json.Unmarshal(raw, &one) == nil && one != "" {
		return []string{one}
	}
	return nil
}
