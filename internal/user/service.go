package user

import (
	"fmt"

	fbase "github.com/J33rry/Cozer-Backend/internal/platform/firebase"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncUser 把身份提供方的账号同步到本地用户表。
// 新账号插入；已有账号按firebase_uid冲突，只刷新设备token、
// 邮箱和游客标记，不触碰用户自己配置的字段。
func SyncUser(db *gorm.DB, identity *fbase.Identity, pushToken string, isAnonymous bool) (*User, error) {
	name := identity.Name
	if name == "" {
		name = "User"
	}

	u := User{
		FirebaseUID: identity.UID,
		Email:       identity.Email,
		DisplayName: name,
		IsGuest:     isAnonymous,
	}
	if pushToken != "" {
		u.FCMToken = &pushToken
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "firebase_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"fcm_token", "email", "is_guest"}),
	}).Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("同步用户失败: %w", err)
	}

	// 冲突路径下Create不回填已有行的ID，重新读一次拿到完整记录
	return findRequired(db, identity.UID)
}

// ProfileUpdate 是用户可以自行修改的字段集合
type ProfileUpdate struct {
	DisplayName          string `json:"display_name"`
	LeetcodeHandle       string `json:"leetcode_user"`
	CodeforcesHandle     string `json:"codeforces_user"`
	DailyNotifications   bool   `json:"daily_notifications"`
	ContestNotifications bool   `json:"contest_notifications"`
	DailyTime            string `json:"daily_time"`
}

// UpdateProfile 整体覆盖用户的档案和订阅配置，返回内部用户ID。
// 用户不存在时返回gorm.ErrRecordNotFound。
func UpdateProfile(db *gorm.DB, firebaseUID string, update ProfileUpdate) (uint, error) {
	u, err := FindByFirebaseUID(db, firebaseUID)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, gorm.ErrRecordNotFound
	}

	values := map[string]interface{}{
		"display_name":          update.DisplayName,
		"leetcode_user":         nilIfEmpty(update.LeetcodeHandle),
		"codeforces_user":       nilIfEmpty(update.CodeforcesHandle),
		"daily_notifications":   update.DailyNotifications,
		"contest_notifications": update.ContestNotifications,
	}
	if update.DailyTime != "" {
		values["daily_time"] = update.DailyTime
	}

	if err := db.Model(&User{}).Where("id = ?", u.ID).Updates(values).Error; err != nil {
		return 0, fmt.Errorf("更新用户档案失败: %w", err)
	}
	return u.ID, nil
}

// findRequired 按外部ID查找用户，不存在视为错误
func findRequired(db *gorm.DB, firebaseUID string) (*User, error) {
	u, err := FindByFirebaseUID(db, firebaseUID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("用户 %s 同步后仍不存在", firebaseUID)
	}
	return u, nil
}

// nilIfEmpty 把空字符串转换为NULL，保持"未绑定"的语义
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
