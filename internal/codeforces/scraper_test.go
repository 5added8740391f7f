package codeforces

import (
	"errors"
	"strings"
	"testing"
)

const problemPageHTML = `
<html><body>
<div class="problem-statement">
  <div class="header">
    <div class="title">A. Theatre Square</div>
    <div class="time-limit"><div class="property-title">time limit per test</div>1 second</div>
    <div class="memory-limit"><div class="property-title">memory limit per test</div>256 megabytes</div>
  </div>
  <div><p>Theatre Square in the capital city of Berland has a rectangular shape.</p>
  <img src="/predownloaded/pic.png"></div>
</div>
</body></html>`

func TestParseProblemPage(t *testing.T) {
	page, err := parseProblemPage(strings.NewReader(problemPageHTML), "https://codeforces.com")
	if err != nil {
		t.Fatalf("parseProblemPage: %v", err)
	}

	if page.Title != "A. Theatre Square" {
		t.Fatalf("标题提取不正确: %q", page.Title)
	}
	if page.TimeLimit != "1 second" {
		t.Fatalf("时间限制提取不正确: %q", page.TimeLimit)
	}
	if page.MemoryLimit != "256 megabytes" {
		t.Fatalf("内存限制提取不正确: %q", page.MemoryLimit)
	}

	if !strings.Contains(page.HTML, "rectangular shape") {
		t.Fatalf("正文缺失: %q", page.HTML)
	}
	if strings.Contains(page.HTML, "A. Theatre Square") {
		t.Fatalf("页眉应从正文中移除: %q", page.HTML)
	}
	if !strings.Contains(page.HTML, `src="https://codeforces.com/predownloaded/pic.png"`) {
		t.Fatalf("图片地址应被绝对化: %q", page.HTML)
	}
}

func TestParseProblemPageMissingStatement(t *testing.T) {
	html := `<html><body><div class="content">Access denied</div></body></html>`
	if _, err := parseProblemPage(strings.NewReader(html), "https://codeforces.com"); !errors.Is(err, ErrStatementMissing) {
		t.Fatalf("期望ErrStatementMissing, got %v", err)
	}
}
