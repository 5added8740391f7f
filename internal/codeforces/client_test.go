package codeforces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/J33rry/Cozer-Backend/internal/platform/config"
)

func newAPIServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{
		CodeforcesAPI: server.URL,
		CodeforcesWeb: server.URL,
	})
}

func TestFetchUserInfoBatch(t *testing.T) {
	var gotHandles string
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHandles = r.URL.Query().Get("handles")
		w.Write([]byte(`{"status": "OK", "result": [
			{"handle": "alice", "rating": 1500, "maxRating": 1600, "rank": "specialist", "maxRank": "expert"},
			{"handle": "bob", "rating": 1200, "maxRating": 1200, "rank": "pupil", "maxRank": "pupil"}
		]}`))
	})

	infos, err := client.FetchUserInfo(context.Background(), []string{"alice", "bob", "ghost"})
	if err != nil {
		t.Fatalf("FetchUserInfo: %v", err)
	}

	if gotHandles != "alice;bob;ghost" {
		t.Fatalf("批量handle拼接不正确: %q", gotHandles)
	}
	if len(infos) != 2 {
		t.Fatalf("映射大小不正确: %v", infos)
	}
	if infos["alice"].Rating != 1500 || infos["bob"].Rank != "pupil" {
		t.Fatalf("映射内容不正确: %v", infos)
	}
	if _, ok := infos["ghost"]; ok {
		t.Fatal("响应中缺席的handle不应出现在映射里")
	}
}

func TestFetchUserInfoEmptyHandles(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("空handle列表不应发起请求")
	})

	infos, err := client.FetchUserInfo(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchUserInfo: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("应返回空映射: %v", infos)
	}
}

func TestGetAPIFailedStatus(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "FAILED", "comment": "handles: User with handle ghost not found"}`))
	})

	if _, err := client.FetchRatingHistory(context.Background(), "ghost"); err == nil {
		t.Fatal("FAILED状态应返回错误")
	}
}

func TestFetchContestList(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("gym") != "false" {
			t.Errorf("应排除gym竞赛: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status": "OK", "result": [
			{"id": 2000, "name": "Round 2000", "phase": "BEFORE", "startTimeSeconds": 1700000000, "durationSeconds": 7200}
		]}`))
	})

	entries, err := client.FetchContestList(context.Background())
	if err != nil {
		t.Fatalf("FetchContestList: %v", err)
	}
	if len(entries) != 1 || entries[0].Phase != "BEFORE" {
		t.Fatalf("竞赛列表解析不正确: %+v", entries)
	}
}
