package user

import "time"

// User 定义了用户在数据库中的持久化模型。
// 身份由外部Firebase账号提供，本地只存镜像和订阅配置。
type User struct {
	ID uint `gorm:"primarykey" json:"id"`

	// FirebaseUID 是用户在身份提供方的稳定外部ID
	FirebaseUID string `gorm:"column:firebase_uid;uniqueIndex;not null" json:"firebase_uid"`

	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsGuest     bool   `gorm:"default:false" json:"is_guest"`
	AvatarIcon  string `json:"avatar_icon"`

	// 两个平台的外部handle，nil表示未绑定
	LeetcodeHandle   *string `gorm:"column:leetcode_user" json:"leetcode_user"`
	CodeforcesHandle *string `gorm:"column:codeforces_user" json:"codeforces_user"`

	// FCMToken 是推送设备token，nil表示该设备不可达；token可能已失效
	FCMToken *string `gorm:"column:fcm_token" json:"fcm_token"`

	// 两个互相独立的订阅开关
	DailyNotifications   bool `gorm:"default:true" json:"daily_notifications"`
	ContestNotifications bool `gorm:"default:true" json:"contest_notifications"`

	// DailyTime 是每日提醒的墙上时间，格式 HH:MM:SS，不带时区
	DailyTime string `gorm:"type:varchar(8);default:'12:00:00'" json:"daily_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
