package scheduler

import (
	"fmt"
	"time"
)

// ReminderWindow 返回now所在的半小时时间块的闭区间边界，格式 HH:MM:SS。
// 每个小时被切成[HH:00:00, HH:29:59]和[HH:30:00, HH:59:59]两块，
// 和用户表里daily_time字段的字典序比较配合使用。
func ReminderWindow(now time.Time) (string, string) {
	hour := now.Hour()
	if now.Minute() < 30 {
		return fmt.Sprintf("%02d:00:00", hour), fmt.Sprintf("%02d:29:59", hour)
	}
	return fmt.Sprintf("%02d:30:00", hour), fmt.Sprintf("%02d:59:59", hour)
}

// MatchesLeadTime 判断开赛时刻是否落在提前提醒的命中窗口内。
// 窗口为[lead-halfWidth, lead+halfWidth]闭区间：lead取30分钟、
// halfWidth取15分钟时，开赛前15到45分钟之间的竞赛都会命中。
func MatchesLeadTime(startMillis int64, now time.Time, lead, halfWidth time.Duration) bool {
	start := time.UnixMilli(startMillis)
	until := start.Sub(now)
	diff := until - lead
	if diff < 0 {
		diff = -diff
	}
	return diff <= halfWidth
}
