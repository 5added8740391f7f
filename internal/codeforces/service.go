package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 服务层错误，Handler据此区分"未找到"和"上游失败"
var (
	ErrNotLinked = errors.New("用户未绑定Codeforces账号")
	ErrNotFound  = errors.New("题目不存在")
	ErrUpstream  = errors.New("Codeforces上游请求失败")
)

// 查询来源标记，随响应返回给前端
const (
	SourceDatabase = "db"
	SourceScrape   = "scrape"
)

// ProblemScraper 是题面来源的抽象，测试中用假实现替换Client
type ProblemScraper interface {
	ScrapeProblem(ctx context.Context, contestID int, index string) (*ProblemPage, error)
}

// Service 承载Codeforces模块的业务逻辑
type Service struct {
	db      *gorm.DB
	scraper ProblemScraper
}

// NewService 创建一个Service
func NewService(db *gorm.DB, scraper ProblemScraper) *Service {
	return &Service{db: db, scraper: scraper}
}

// UpsertStatsFromAPI 用批量接口的用户信息和逐用户抓取的rating历史
// 整行覆盖该用户的统计快照。
func UpsertStatsFromAPI(db *gorm.DB, userID uint, info UserInfo, history []RatingChange) error {
	if history == nil {
		history = []RatingChange{}
	}
	contests, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("序列化rating历史失败: %w", err)
	}

	rank := info.Rank
	if rank == "" {
		rank = "unrated"
	}
	maxRank := info.MaxRank
	if maxRank == "" {
		maxRank = "unrated"
	}

	stats := Stats{
		UserID:    userID,
		Rating:    info.Rating,
		MaxRating: info.MaxRating,
		Rank:      rank,
		MaxRank:   maxRank,
		Contests:  string(contests),
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&stats).Error
}

// StatsByUserID 查询用户的统计快照；未绑定时返回ErrNotLinked
func StatsByUserID(db *gorm.DB, userID uint) (*Stats, error) {
	var stats Stats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotLinked
		}
		return nil, err
	}
	return &stats, nil
}

// ProblemByID 按比赛号和题号读取题面，是一个读穿缓存：
// 命中直接返回库中记录；未命中时抓取页面、校验、落库后返回。
// 抓取失败或页面无题面时不缓存任何负面结果。
func (s *Service) ProblemByID(ctx context.Context, contestID int, index string) (*Problem, string, error) {
	problemID := fmt.Sprintf("%d%s", contestID, index)

	var cached Problem
	err := s.db.Where("problem_id = ?", problemID).First(&cached).Error
	if err == nil {
		return &cached, SourceDatabase, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	fmt.Printf("Codeforces题面缓存未命中: %s，开始抓取...\n", problemID)

	page, err := s.scraper.ScrapeProblem(ctx, contestID, index)
	if err != nil {
		if errors.Is(err, ErrStatementMissing) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if page.Title == "" || page.HTML == "" {
		return nil, "", ErrNotFound
	}

	record := Problem{
		ProblemID:   problemID,
		Title:       page.Title,
		TimeLimit:   page.TimeLimit,
		MemoryLimit: page.MemoryLimit,
		HTML:        page.HTML,
	}

	// 并发抓取同一道题时先写者胜，冲突写入被忽略
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return nil, "", fmt.Errorf("缓存题面 %s 失败: %w", problemID, err)
	}

	return &record, SourceScrape, nil
}

// ListProblems 对已缓存的题面做简单的条件查询
func (s *Service) ListProblems(keyword string, limit, skip int) ([]Problem, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Model(&Problem{}).Order("problem_id")
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var problems []Problem
	if err := query.Limit(limit).Offset(skip).Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}
