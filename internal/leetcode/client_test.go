package leetcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/J33rry/Cozer-Backend/internal/platform/config"
)

func newProfileServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{
		LeetcodeProfileAPI: server.URL,
		LeetcodeGraphQL:    server.URL,
	})
}

func TestFetchProfile(t *testing.T) {
	client := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/userProfile/alice") {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"totalSolved": 120, "easySolved": 60, "mediumSolved": 50, "hardSolved": 10,
			"ranking": 54321, "totalQuestions": 3000,
			"submissionCalendar": "{\"1700000000\": 3}",
			"recentSubmissions": [{"title": "Two Sum"}]
		}`))
	})

	profile, err := client.FetchProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.TotalSolved != 120 || profile.Ranking != 54321 {
		t.Fatalf("档案解析不正确: %+v", profile)
	}
	if profile.SubmissionCalendar == "" || len(profile.RecentSubmissions) == 0 {
		t.Fatalf("日历或提交列表缺失: %+v", profile)
	}
}

func TestFetchProfileEmptyResponse(t *testing.T) {
	client := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
		// 接口对不存在的handle返回空对象而不是错误状态码
		w.Write([]byte(`{}`))
	})

	if _, err := client.FetchProfile(context.Background(), "no-such-user"); err == nil {
		t.Fatal("空档案应视为无效响应")
	}
}

func TestFetchProfileUpstreamStatus(t *testing.T) {
	client := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.FetchProfile(context.Background(), "alice"); err == nil {
		t.Fatal("非200状态码应返回错误")
	}
}

func TestFetchQuestionAbsent(t *testing.T) {
	client := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"question": null}}`))
	})

	detail, err := client.FetchQuestion(context.Background(), "no-such-slug")
	if err != nil {
		t.Fatalf("FetchQuestion: %v", err)
	}
	if detail != nil {
		t.Fatalf("不存在的题目应返回nil: %+v", detail)
	}
}
