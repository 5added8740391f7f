package user

import (
	"testing"

	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, u User, daily, contest bool) User {
	t.Helper()
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	err := db.Model(&User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"daily_notifications":   daily,
		"contest_notifications": contest,
	}).Error
	if err != nil {
		t.Fatalf("设置测试用户开关失败: %v", err)
	}
	return u
}

func ptr(s string) *string { return &s }

func TestLinkedUsersExcludeUnbound(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, User{FirebaseUID: "uid-a", LeetcodeHandle: ptr("alice_lc"), CodeforcesHandle: ptr("alice_cf")}, true, true)
	// 只绑定了Codeforces
	seedUser(t, db, User{FirebaseUID: "uid-b", CodeforcesHandle: ptr("bob_cf")}, true, true)
	// 空字符串等同于未绑定
	empty := ""
	seedUser(t, db, User{FirebaseUID: "uid-c", LeetcodeHandle: &empty}, true, true)

	lcUsers, err := LeetcodeLinkedUsers(db)
	if err != nil {
		t.Fatalf("LeetcodeLinkedUsers: %v", err)
	}
	if len(lcUsers) != 1 || lcUsers[0].ID != alice.ID || lcUsers[0].Handle != "alice_lc" {
		t.Fatalf("LeetCode绑定列表不正确: %+v", lcUsers)
	}

	cfUsers, err := CodeforcesLinkedUsers(db)
	if err != nil {
		t.Fatalf("CodeforcesLinkedUsers: %v", err)
	}
	if len(cfUsers) != 2 {
		t.Fatalf("Codeforces绑定列表不正确: %+v", cfUsers)
	}
}

func TestContestReminderTokensFilter(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, User{FirebaseUID: "uid-a", FCMToken: ptr("token-a")}, true, true)
	// 关闭了竞赛提醒
	seedUser(t, db, User{FirebaseUID: "uid-b", FCMToken: ptr("token-b")}, true, false)
	// 没有设备token
	seedUser(t, db, User{FirebaseUID: "uid-c"}, true, true)

	tokens, err := ContestReminderTokens(db)
	if err != nil {
		t.Fatalf("ContestReminderTokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != "token-a" {
		t.Fatalf("token列表不正确: %v", tokens)
	}
}

func TestDailyReminderTokensInclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, User{FirebaseUID: "uid-a", FCMToken: ptr("token-a"), DailyTime: "12:00:00"}, true, true)
	seedUser(t, db, User{FirebaseUID: "uid-b", FCMToken: ptr("token-b"), DailyTime: "12:29:59"}, true, true)
	seedUser(t, db, User{FirebaseUID: "uid-c", FCMToken: ptr("token-c"), DailyTime: "12:30:00"}, true, true)

	tokens, err := DailyReminderTokens(db, "12:00:00", "12:29:59")
	if err != nil {
		t.Fatalf("DailyReminderTokens: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("闭区间边界应包含两端: %v", tokens)
	}

	tokens, err = DailyReminderTokens(db, "12:30:00", "12:59:59")
	if err != nil {
		t.Fatalf("DailyReminderTokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != "token-c" {
		t.Fatalf("下半块结果不正确: %v", tokens)
	}
}
