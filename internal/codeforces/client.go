package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/platform/config"
)

// browserUserAgent 伪装成浏览器，Codeforces对裸的Go UA不太友好
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// UserInfo 是user.info接口返回的用户信息
type UserInfo struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

// RatingChange 是user.rating接口返回的一条rating变化记录
type RatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	Handle                  string `json:"handle"`
	Rank                    int    `json:"rank"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
}

// ContestEntry 是contest.list接口返回的一条竞赛记录
type ContestEntry struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
	DurationSeconds  int64  `json:"durationSeconds"`
}

// Client 封装了对Codeforces公开API和网页的只读访问
type Client struct {
	httpClient *http.Client
	apiBase    string
	webBase    string
}

// NewClient 根据上游配置创建一个Client
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    cfg.CodeforcesAPI,
		webBase:    cfg.CodeforcesWeb,
	}
}

// apiEnvelope 是Codeforces API的统一响应外壳
type apiEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// getAPI 请求一个API端点，并把result字段解码到out中
func (c *Client) getAPI(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.apiBase, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求Codeforces API失败: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("解析Codeforces响应失败: %w", err)
	}
	if envelope.Status != "OK" {
		return fmt.Errorf("Codeforces API返回失败: %s", envelope.Comment)
	}
	return json.Unmarshal(envelope.Result, out)
}

// FetchUserInfo 批量获取多个handle的用户信息，N个handle只发一次请求。
// 返回按handle索引的映射，响应中缺席的handle不会出现在映射里。
func (c *Client) FetchUserInfo(ctx context.Context, handles []string) (map[string]UserInfo, error) {
	if len(handles) == 0 {
		return map[string]UserInfo{}, nil
	}

	query := url.Values{}
	query.Set("handles", strings.Join(handles, ";"))

	var result []UserInfo
	if err := c.getAPI(ctx, "user.info", query, &result); err != nil {
		return nil, err
	}

	infoMap := make(map[string]UserInfo, len(result))
	for _, info := range result {
		infoMap[info.Handle] = info
	}
	return infoMap, nil
}

// FetchRatingHistory 获取单个handle的rating变化历史。
// 这个端点没有批量形式，只能逐用户调用。
func (c *Client) FetchRatingHistory(ctx context.Context, handle string) ([]RatingChange, error) {
	query := url.Values{}
	query.Set("handle", handle)

	var result []RatingChange
	if err := c.getAPI(ctx, "user.rating", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FetchContestList 获取竞赛列表（不含gym）
func (c *Client) FetchContestList(ctx context.Context) ([]ContestEntry, error) {
	query := url.Values{}
	query.Set("gym", "false")

	var result []ContestEntry
	if err := c.getAPI(ctx, "contest.list", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}
