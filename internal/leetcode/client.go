package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/platform/config"
)

// browserUserAgent 伪装成浏览器，避免GraphQL接口拒绝服务端请求
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Profile 是用户统计接口返回的档案数据
type Profile struct {
	TotalSolved        int             `json:"totalSolved"`
	EasySolved         int             `json:"easySolved"`
	MediumSolved       int             `json:"mediumSolved"`
	HardSolved         int             `json:"hardSolved"`
	Ranking            int             `json:"ranking"`
	TotalQuestions     int             `json:"totalQuestions"`
	TotalEasy          int             `json:"totalEasy"`
	TotalMedium        int             `json:"totalMedium"`
	TotalHard          int             `json:"totalHard"`
	SubmissionCalendar string          `json:"submissionCalendar"`
	RecentSubmissions  json.RawMessage `json:"recentSubmissions"`
}

// QuestionDetail 是GraphQL返回的题目详情
type QuestionDetail struct {
	QuestionID       string   `json:"questionId"`
	Title            string   `json:"title"`
	TitleSlug        string   `json:"titleSlug"`
	Difficulty       string   `json:"difficulty"`
	Content          string   `json:"content"`
	ExampleTestcases string   `json:"exampleTestcases"`
	Hints            []string `json:"hints"`
	TopicTags        []struct {
		Name string `json:"name"`
	} `json:"topicTags"`
}

// DailyQuestion 是GraphQL返回的每日一题
type DailyQuestion struct {
	Date     string         `json:"date"`
	Link     string         `json:"link"`
	Question QuestionDetail `json:"question"`
}

// ContestInfo 是GraphQL返回的即将开始的竞赛条目
type ContestInfo struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	StartTime int64  `json:"startTime"` // 秒级时间戳
	Duration  int64  `json:"duration"`  // 秒
}

// Client 封装了对LeetCode两个来源的只读访问：
// 第三方统计API（按handle查档案）和官方GraphQL（题目与竞赛）。
type Client struct {
	httpClient *http.Client
	profileAPI string
	graphqlURL string
}

// NewClient 根据上游配置创建一个Client
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		profileAPI: cfg.LeetcodeProfileAPI,
		graphqlURL: cfg.LeetcodeGraphQL,
	}
}

// FetchProfile 按handle获取用户的档案统计
func (c *Client) FetchProfile(ctx context.Context, handle string) (*Profile, error) {
	url := fmt.Sprintf("%s/userProfile/%s", c.profileAPI, handle)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求LeetCode档案接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LeetCode档案接口返回状态码 %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("解析LeetCode档案响应失败: %w", err)
	}

	// 接口对不存在的handle会返回空对象，视为无效响应
	if profile.TotalSolved == 0 && profile.TotalQuestions == 0 && profile.Ranking == 0 {
		return nil, fmt.Errorf("LeetCode档案响应为空，handle可能不存在: %s", handle)
	}

	return &profile, nil
}

// graphqlRequest 是GraphQL请求体
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// postGraphQL 发送一个GraphQL查询，并把data字段解码到out中
func (c *Client) postGraphQL(ctx context.Context, reqBody graphqlRequest, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求LeetCode GraphQL失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LeetCode GraphQL返回状态码 %d", resp.StatusCode)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("解析GraphQL响应失败: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("解析GraphQL data字段失败: %w", err)
	}
	return nil
}

// FetchQuestion 按slug获取题目详情；题目不存在时返回nil
func (c *Client) FetchQuestion(ctx context.Context, slug string) (*QuestionDetail, error) {
	const query = `
	query getQuestionDetail($titleSlug: String!) {
		question(titleSlug: $titleSlug) {
			questionId
			title
			titleSlug
			difficulty
			content
			exampleTestcases
			hints
			topicTags { name }
		}
	}`

	var data struct {
		Question *QuestionDetail `json:"question"`
	}
	err := c.postGraphQL(ctx, graphqlRequest{
		Query:     query,
		Variables: map[string]interface{}{"titleSlug": slug},
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.Question, nil
}

// FetchDailyQuestion 获取今天的每日一题
func (c *Client) FetchDailyQuestion(ctx context.Context) (*DailyQuestion, error) {
	const query = `
	query questionOfToday {
		activeDailyCodingChallengeQuestion {
			date
			link
			question {
				questionId
				title
				titleSlug
				difficulty
				content
				exampleTestcases
				hints
				topicTags { name }
			}
		}
	}`

	var data struct {
		Active *DailyQuestion `json:"activeDailyCodingChallengeQuestion"`
	}
	if err := c.postGraphQL(ctx, graphqlRequest{Query: query}, &data); err != nil {
		return nil, err
	}
	if data.Active == nil {
		return nil, fmt.Errorf("GraphQL未返回每日一题")
	}
	return data.Active, nil
}

// FetchUpcomingContests 获取即将开始的竞赛（平台只暴露最近两场）
func (c *Client) FetchUpcomingContests(ctx context.Context) ([]ContestInfo, error) {
	const query = `
	query upcomingContests {
		topTwoContests {
			title
			titleSlug
			startTime
			duration
		}
	}`

	var data struct {
		TopTwoContests []ContestInfo `json:"topTwoContests"`
	}
	if err := c.postGraphQL(ctx, graphqlRequest{Query: query}, &data); err != nil {
		return nil, err
	}
	return data.TopTwoContests, nil
}
