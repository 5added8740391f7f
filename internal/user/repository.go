package user

import (
	"errors"

	"gorm.io/gorm"
)

// LinkedUser 是后台刷新任务需要的最小用户视图
type LinkedUser struct {
	ID     uint
	Handle string
}

// FindByFirebaseUID 按外部ID查找用户；不存在时返回nil
func FindByFirebaseUID(db *gorm.DB, firebaseUID string) (*User, error) {
	var u User
	if err := db.Where("firebase_uid = ?", firebaseUID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// LeetcodeLinkedUsers 返回所有绑定了LeetCode handle的用户
func LeetcodeLinkedUsers(db *gorm.DB) ([]LinkedUser, error) {
	var users []LinkedUser
	err := db.Model(&User{}).
		Select("id", "leetcode_user as handle").
		Where("leetcode_user IS NOT NULL AND leetcode_user <> ''").
		Find(&users).Error
	return users, err
}

// CodeforcesLinkedUsers 返回所有绑定了Codeforces handle的用户
func CodeforcesLinkedUsers(db *gorm.DB) ([]LinkedUser, error) {
	var users []LinkedUser
	err := db.Model(&User{}).
		Select("id", "codeforces_user as handle").
		Where("codeforces_user IS NOT NULL AND codeforces_user <> ''").
		Find(&users).Error
	return users, err
}

// ContestReminderTokens 返回订阅了竞赛提醒且设备可达的用户token集合
func ContestReminderTokens(db *gorm.DB) ([]string, error) {
	var tokens []string
	err := db.Model(&User{}).
		Where("contest_notifications = ? AND fcm_token IS NOT NULL AND fcm_token <> ''", true).
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}

// DailyReminderTokens 返回每日提醒时间落在[start, end]闭区间内、
// 订阅开启且设备可达的用户token集合。start/end格式为 HH:MM:SS。
func DailyReminderTokens(db *gorm.DB, start, end string) ([]string, error) {
	var tokens []string
	err := db.Model(&User{}).
		Where("daily_notifications = ? AND fcm_token IS NOT NULL AND fcm_token <> ''", true).
		Where("daily_time BETWEEN ? AND ?", start, end).
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}
