package leetcode

import "time"

// Stats 定义了用户LeetCode统计数据的持久化模型。
// 每个用户至多一行，刷新时整行覆盖，不保留历史。
type Stats struct {
	ID     uint `gorm:"primarykey" json:"-"`
	UserID uint `gorm:"uniqueIndex;not null;constraint:OnDelete:CASCADE" json:"user_id"`

	TotalSolved  int `gorm:"default:0" json:"total_problems_solved"`
	EasySolved   int `gorm:"default:0" json:"easy_problems_solved"`
	MediumSolved int `gorm:"default:0" json:"medium_problems_solved"`
	HardSolved   int `gorm:"default:0" json:"hard_problems_solved"`
	Ranking      int `gorm:"default:0" json:"ranking"`

	// 题库总量，来自平台，用于前端绘制进度环
	TotalQuestions int `gorm:"default:0" json:"total_questions"`
	TotalEasy      int `gorm:"default:0" json:"total_easy"`
	TotalMedium    int `gorm:"default:0" json:"total_medium"`
	TotalHard      int `gorm:"default:0" json:"total_hard"`

	// Calendar 是平台返回的提交日历，原样存储的JSON文本
	Calendar string `gorm:"type:text" json:"calendar"`
	// RecentSubmissions 是最近提交列表，原样存储的JSON文本
	RecentSubmissions string `gorm:"type:text" json:"recent_submissions"`

	UpdatedAt time.Time `json:"-"`
}

// TableName 显式指定表名，避免和codeforces模块的同名模型冲突
func (Stats) TableName() string {
	return "leetcode_stats"
}

// Problem 是题目详情的读穿缓存行。
// 首次查询时从平台抓取并落库，之后命中即返回，不做过期淘汰。
type Problem struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	QuestionID int    `gorm:"uniqueIndex;not null" json:"question_id"`
	Slug       string `gorm:"uniqueIndex;not null" json:"problem_slug"`

	Title      string `gorm:"not null" json:"title"`
	Difficulty string `gorm:"not null" json:"difficulty"`
	Content    string `gorm:"type:text;not null" json:"content"`

	// TopicTags 和 Hints 以JSON文本存储的字符串数组
	TopicTags        string `gorm:"type:text" json:"topic_tags"`
	ExampleTestcases string `gorm:"type:text" json:"example_test_cases"`
	Hints            string `gorm:"type:text" json:"hints"`
}

// TableName 显式指定表名，避免和codeforces模块的同名模型冲突
func (Problem) TableName() string {
	return "leetcode_problems"
}

// DailyProblem 是每日一题的缓存行，按UTC日期唯一。
type DailyProblem struct {
	ID   uint   `gorm:"primarykey" json:"-"`
	Date string `gorm:"uniqueIndex;not null" json:"date"` // YYYY-MM-DD

	Slug       string `gorm:"not null" json:"problem_slug"`
	QuestionID int    `json:"question_id"`
	Title      string `gorm:"not null" json:"title"`
	Difficulty string `gorm:"not null" json:"difficulty"`
	Content    string `gorm:"type:text" json:"content"`
	Link       string `json:"link"`

	TopicTags        string `gorm:"type:text" json:"topic_tags"`
	ExampleTestcases string `gorm:"type:text" json:"example_test_cases"`
	Hints            string `gorm:"type:text" json:"hints"`
}
