package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 服务层错误，Handler据此区分"未找到"和"上游失败"
var (
	ErrNotLinked = errors.New("用户未绑定LeetCode账号")
	ErrNotFound  = errors.New("题目不存在")
	ErrUpstream  = errors.New("LeetCode上游请求失败")
)

// 查询来源标记，随响应返回给前端
const (
	SourceDatabase = "database"
	SourceUpstream = "leetcode"
)

// ProblemFetcher 是题目/每日一题的来源抽象，测试中用假实现替换Client
type ProblemFetcher interface {
	FetchQuestion(ctx context.Context, slug string) (*QuestionDetail, error)
	FetchDailyQuestion(ctx context.Context) (*DailyQuestion, error)
}

// Service 承载LeetCode模块的业务逻辑
type Service struct {
	db      *gorm.DB
	fetcher ProblemFetcher
}

// NewService 创建一个Service
func NewService(db *gorm.DB, fetcher ProblemFetcher) *Service {
	return &Service{db: db, fetcher: fetcher}
}

// UpsertStatsFromProfile 用平台档案整行覆盖用户的统计快照。
// 行不存在时插入，存在时按user_id冲突整行更新。
func UpsertStatsFromProfile(db *gorm.DB, userID uint, profile *Profile) error {
	stats := Stats{
		UserID:            userID,
		TotalSolved:       profile.TotalSolved,
		EasySolved:        profile.EasySolved,
		MediumSolved:      profile.MediumSolved,
		HardSolved:        profile.HardSolved,
		Ranking:           profile.Ranking,
		TotalQuestions:    profile.TotalQuestions,
		TotalEasy:         profile.TotalEasy,
		TotalMedium:       profile.TotalMedium,
		TotalHard:         profile.TotalHard,
		Calendar:          profile.SubmissionCalendar,
		RecentSubmissions: string(profile.RecentSubmissions),
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

// ProblemBySlug 按slug读取题目详情，是一个读穿缓存：
// 命中直接返回库中记录；未命中时从平台抓取、校验、落库后返回。
// 并发写入同一slug时采用"先写者胜"，冲突写入被忽略。
func (s *Service) ProblemBySlug(ctx context.Context, slug string) (*Problem, string, error) {
	var cached Problem
	err := s.db.Where("slug = ?", slug).First(&cached).Error
	if err == nil {
		return &cached, SourceDatabase, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	fmt.Printf("LeetCode题目缓存未命中: %s，从上游抓取...\n", slug)

	detail, err := s.fetcher.FetchQuestion(ctx, slug)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if detail == nil || detail.Title == "" {
		return nil, "", ErrNotFound
	}

	problem, err := problemFromDetail(slug, detail)
	if err != nil {
		return nil, "", err
	}

	// 两个请求同时抓取同一道新题时，后写入者的冲突被直接忽略
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(problem).Error; err != nil {
		return nil, "", fmt.Errorf("缓存题目 %s 失败: %w", slug, err)
	}

	return problem, SourceUpstream, nil
}

// DailyProblem 读取今天（UTC）的每日一题，同样是读穿缓存
func (s *Service) DailyProblem(ctx context.Context) (*DailyProblem, string, error) {
	today := time.Now().UTC().Format("2006-01-02")

	var cached DailyProblem
	err := s.db.Where("date = ?", today).First(&cached).Error
	if err == nil {
		return &cached, SourceDatabase, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	fmt.Println("每日一题缓存未命中，从上游抓取...")

	daily, err := s.fetcher.FetchDailyQuestion(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if daily.Question.Title == "" {
		return nil, "", ErrNotFound
	}

	questionID, _ := strconv.Atoi(daily.Question.QuestionID)
	tags, err := marshalNames(daily.Question.TopicTags)
	if err != nil {
		return nil, "", err
	}
	hints, err := json.Marshal(daily.Question.Hints)
	if err != nil {
		return nil, "", err
	}

	record := DailyProblem{
		Date:             daily.Date,
		Slug:             daily.Question.TitleSlug,
		QuestionID:       questionID,
		Title:            daily.Question.Title,
		Difficulty:       daily.Question.Difficulty,
		Content:          daily.Question.Content,
		Link:             daily.Link,
		TopicTags:        tags,
		ExampleTestcases: daily.Question.ExampleTestcases,
		Hints:            string(hints),
	}

	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return nil, "", fmt.Errorf("缓存每日一题失败: %w", err)
	}

	return &record, SourceUpstream, nil
}

// ListProblems 对已缓存的题目做简单的条件查询
func (s *Service) ListProblems(difficulty, keyword string, limit, skip int) ([]Problem, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Model(&Problem{}).Order("question_id")
	if difficulty != "" {
		query = query.Where("difficulty = ?", normalizeDifficulty(difficulty))
	}
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var problems []Problem
	if err := query.Limit(limit).Offset(skip).Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

// problemFromDetail 把GraphQL详情转换为缓存行
func problemFromDetail(slug string, detail *QuestionDetail) (*Problem, error) {
	questionID, err := strconv.Atoi(detail.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("题目ID格式异常: %q", detail.QuestionID)
	}
	tags, err := marshalNames(detail.TopicTags)
	if err != nil {
		return nil, err
	}
	hints, err := json.Marshal(detail.Hints)
	if err != nil {
		return nil, err
	}

	return &Problem{
		QuestionID:       questionID,
		Slug:             slug,
		Title:            detail.Title,
		Difficulty:       detail.Difficulty,
		Content:          detail.Content,
		TopicTags:        tags,
		ExampleTestcases: detail.ExampleTestcases,
		Hints:            string(hints),
	}, nil
}

// marshalNames 把topicTags压成字符串数组的JSON文本
func marshalNames(tags []struct {
	Name string `json:"name"`
}) (string, error) {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	b, err := json.Marshal(names)
	return string(b), err
}

// normalizeDifficulty 把难度归一为平台的标准写法，例如 "easy" -> "Easy"。
// 不认识的值原样返回，交给查询自然落空。
func normalizeDifficulty(d string) string {
	switch strings.ToLower(d) {
	case "easy":
		return "Easy"
	case "medium":
		return "Medium"
	case "hard":
		return "Hard"
	}
	return d
}
