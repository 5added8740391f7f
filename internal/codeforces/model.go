package codeforces

import "time"

// Stats 定义了用户Codeforces统计数据的持久化模型。
// 每个用户至多一行，刷新时整行覆盖。
type Stats struct {
	ID     uint `gorm:"primarykey" json:"-"`
	UserID uint `gorm:"uniqueIndex;not null;constraint:OnDelete:CASCADE" json:"user_id"`

	Rating    int    `gorm:"default:0" json:"rating"`
	MaxRating int    `gorm:"default:0" json:"max_rating"`
	Rank      string `gorm:"default:'unrated'" json:"rank"`
	MaxRank   string `gorm:"default:'unrated'" json:"max_rank"`

	// Contests 是用户的rating变化历史，原样存储的JSON文本
	Contests string `gorm:"type:text" json:"contests"`

	UpdatedAt time.Time `json:"-"`
}

// TableName 显式指定表名，避免和leetcode模块的同名模型冲突
func (Stats) TableName() string {
	return "codeforces_stats"
}

// Problem 是题面抓取结果的读穿缓存行，主键为"{contestId}{index}"。
// 首写者胜，已存在的行不会被重复抓取覆盖。
type Problem struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	ProblemID string `gorm:"uniqueIndex;not null" json:"problem_id"` // 例如 "2182G"

	Title       string `gorm:"not null" json:"title"`
	TimeLimit   string `gorm:"not null" json:"time_limit"`
	MemoryLimit string `gorm:"not null" json:"memory_limit"`

	// HTML 是清洗后的题面正文（去页眉、图片地址绝对化）
	HTML string `gorm:"type:text;not null" json:"html"`
}

// TableName 显式指定表名，避免和leetcode模块的同名模型冲突
func (Problem) TableName() string {
	return "codeforces_problems"
}
