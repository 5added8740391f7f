package codeforces

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrStatementMissing 表示页面上没有题面，可能是题号错误或被反爬拦截
var ErrStatementMissing = errors.New("页面中找不到题面")

// ProblemPage 是从题目页面提取出的结构化内容
type ProblemPage struct {
	Title       string
	TimeLimit   string
	MemoryLimit string
	HTML        string
}

// ScrapeProblem 抓取并解析一道题目的页面
func (c *Client) ScrapeProblem(ctx context.Context, contestID int, index string) (*ProblemPage, error) {
	pageURL := fmt.Sprintf("%s/problemset/problem/%d/%s", c.webBase, contestID, index)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("抓取题目页面失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("题目页面返回状态码 %d", resp.StatusCode)
	}

	return parseProblemPage(resp.Body, c.webBase)
}

// parseProblemPage 从页面HTML中提取题面。
// 提取标题和资源限制后把页眉从正文中移除，并把相对图片地址绝对化。
func parseProblemPage(r io.Reader, webBase string) (*ProblemPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("解析题目页面失败: %w", err)
	}

	statement := doc.Find(".problem-statement").First()
	if statement.Length() == 0 {
		return nil, ErrStatementMissing
	}

	title := strings.TrimSpace(statement.Find(".header .title").Text())
	timeLimit := strings.TrimSpace(strings.ReplaceAll(
		statement.Find(".header .time-limit").Text(), "time limit per test", ""))
	memoryLimit := strings.TrimSpace(strings.ReplaceAll(
		statement.Find(".header .memory-limit").Text(), "memory limit per test", ""))

	// 相对路径的图片在客户端无法显示，补全为绝对地址
	statement.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && strings.HasPrefix(src, "/") {
			img.SetAttr("src", webBase+src)
		}
	})

	// 标题和限制已单独提取，正文中不再保留页眉
	statement.Find(".header").Remove()

	html, err := statement.Html()
	if err != nil {
		return nil, fmt.Errorf("序列化题面失败: %w", err)
	}

	return &ProblemPage{
		Title:       title,
		TimeLimit:   timeLimit,
		MemoryLimit: memoryLimit,
		HTML:        html,
	}, nil
}
