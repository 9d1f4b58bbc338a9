package sspanel

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/hejijunhao/dailycheckin/internal/httpclient"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name    string
		header  http.Header
		body    string
		wantRet int
		wantMsg string
		wantSC  []string
	}{
		{
			name:    "numeric ret",
			body:    `{"ret":1,"msg":"ok"}`,
			wantRet: 1, wantMsg: "ok",
		},
		{
			name:    "string ret",
			body:    `{"ret":"1","msg":"ok"}`,
			wantRet: 1, wantMsg: "ok",
		},
		{
			name:    "missing fields default",
			body:    `{}`,
			wantRet: 0, wantMsg: "",
		},
		{
			name:    "null msg",
			body:    `{"ret":0,"msg":null}`,
			wantRet: 0, wantMsg: "",
		},
		{
			name:    "non string msg",
			body:    `{"ret":0,"msg":42}`,
			wantRet: 0, wantMsg: "42",
		},
		{
			name:    "cookies from body",
			body:    `{"ret":1,"headers":{"set-cookie":["uid=1; path=/","key=abc; HttpOnly"]}}`,
			wantRet: 1,
			wantSC:  []string{"uid=1; path=/", "key=abc; HttpOnly"},
		},
		{
			name:    "headers win over body",
			header:  http.Header{"Set-Cookie": {"uid=2; path=/"}},
			body:    `{"ret":1,"headers":{"set-cookie":["uid=1"]}}`,
			wantRet: 1,
			wantSC:  []string{"uid=2; path=/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.header
			if h == nil {
				h = http.Header{}
			}
			res, err := decodeResult(&httpclient.Response{StatusCode: 200, Header: h, Body: []byte(tt.body)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Ret != tt.wantRet || res.Msg != tt.wantMsg {
				t.Errorf("got ret=%d msg=%q, want ret=%d msg=%q", res.Ret, res.Msg, tt.wantRet, tt.wantMsg)
			}
			if !reflect.DeepEqual(res.SetCookie, tt.wantSC) && !(len(res.SetCookie) == 0 && len(tt.wantSC) == 0) {
				t.Errorf("SetCookie = %v, want %v", res.SetCookie, tt.wantSC)
			}
		})
	}
}

func TestDecodeResultNotJSON(t *testing.T) {
	_, err := decodeResult(&httpclient.Response{StatusCode: 200, Header: http.Header{}, Body: []byte("<html>login</html>")})
	if err == nil {
		t.Fatal("expected error for HTML body")
	}
}

func TestJoinCookies(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"uid=1; path=/"}, "uid=1"},
		{[]string{"uid=1; path=/", " key=abc; HttpOnly", "", "email=a%40x.com"}, "uid=1;key=abc;email=a%40x.com"},
	}
	for _, tt := range tests {
		if got := joinCookies(tt.in); got != tt.want {
			t.Errorf("joinCookies(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
