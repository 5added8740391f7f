package codeforces

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	db, err := gorm.Open(dsn, &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&Stats{}, &Problem{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

type fakeScraper struct {
	page  *ProblemPage
	err   error
	calls int
}

func (f *fakeScraper) ScrapeProblem(ctx context.Context, contestID int, index string) (*ProblemPage, error) {
	f.calls++
	return f.page, f.err
}

func TestProblemByIDScrapesThenCaches(t *testing.T) {
	db := newTestDB(t)
	scraper := &fakeScraper{page: &ProblemPage{
		Title:       "A. Theatre Square",
		TimeLimit:   "1 second",
		MemoryLimit: "256 megabytes",
		HTML:        "<div><p>Theatre Square...</p></div>",
	}}
	svc := NewService(db, scraper)
	ctx := context.Background()

	problem, source, err := svc.ProblemByID(ctx, 1, "A")
	if err != nil {
		t.Fatalf("首次查询: %v", err)
	}
	if source != SourceScrape {
		t.Fatalf("首次查询来源应为抓取, got %q", source)
	}
	if problem.ProblemID != "1A" || problem.Title != "A. Theatre Square" {
		t.Fatalf("题面内容不正确: %+v", problem)
	}

	cached, source, err := svc.ProblemByID(ctx, 1, "A")
	if err != nil {
		t.Fatalf("二次查询: %v", err)
	}
	if source != SourceDatabase {
		t.Fatalf("二次查询来源应为数据库, got %q", source)
	}
	if cached.TimeLimit != "1 second" {
		t.Fatalf("缓存内容不正确: %+v", cached)
	}
	if scraper.calls != 1 {
		t.Fatalf("页面应只被抓取一次, got %d", scraper.calls)
	}
}

func TestProblemByIDMissingStatement(t *testing.T) {
	db := newTestDB(t)
	scraper := &fakeScraper{err: ErrStatementMissing}
	svc := NewService(db, scraper)

	if _, _, err := svc.ProblemByID(context.Background(), 9999, "Z"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望ErrNotFound, got %v", err)
	}

	var count int64
	db.Model(&Problem{}).Count(&count)
	if count != 0 {
		t.Fatalf("无题面的页面不应落库, count=%d", count)
	}
}

func TestProblemByIDScrapeFailure(t *testing.T) {
	db := newTestDB(t)
	scraper := &fakeScraper{err: errors.New("状态码 403")}
	svc := NewService(db, scraper)

	if _, _, err := svc.ProblemByID(context.Background(), 1, "A"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("期望ErrUpstream, got %v", err)
	}
}

func TestUpsertStatsFromAPIDefaults(t *testing.T) {
	db := newTestDB(t)

	// 无rating的新账号：rank为空、历史为nil
	if err := UpsertStatsFromAPI(db, 3, UserInfo{Handle: "newbie"}, nil); err != nil {
		t.Fatalf("写入统计: %v", err)
	}

	stats, err := StatsByUserID(db, 3)
	if err != nil {
		t.Fatalf("查询统计: %v", err)
	}
	if stats.Rank != "unrated" || stats.MaxRank != "unrated" {
		t.Fatalf("空rank应落为unrated: %+v", stats)
	}
	if stats.Contests != "[]" {
		t.Fatalf("nil历史应落为空数组: %q", stats.Contests)
	}
}

func TestUpsertStatsFromAPIOverwrites(t *testing.T) {
	db := newTestDB(t)

	if err := UpsertStatsFromAPI(db, 3, UserInfo{Rating: 1400, Rank: "specialist"}, nil); err != nil {
		t.Fatalf("首次写入: %v", err)
	}
	history := []RatingChange{{ContestID: 100, NewRating: 1500}}
	if err := UpsertStatsFromAPI(db, 3, UserInfo{Rating: 1500, MaxRating: 1500, Rank: "specialist"}, history); err != nil {
		t.Fatalf("覆盖写入: %v", err)
	}

	var count int64
	db.Model(&Stats{}).Count(&count)
	if count != 1 {
		t.Fatalf("每个用户应只有一行统计, count=%d", count)
	}

	stats, err := StatsByUserID(db, 3)
	if err != nil {
		t.Fatalf("查询统计: %v", err)
	}
	if stats.Rating != 1500 || stats.MaxRating != 1500 {
		t.Fatalf("统计未被覆盖: %+v", stats)
	}
}
