package contest

import (
	"testing"

	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCodeforcesFiltersStarted(t *testing.T) {
	entries := []codeforces.ContestEntry{
		{ID: 100, Name: "Round 100", Phase: "BEFORE", StartTimeSeconds: 1700000000, DurationSeconds: 7200},
		{ID: 99, Name: "Round 99", Phase: "CODING", StartTimeSeconds: 1699990000, DurationSeconds: 7200},
		{ID: 98, Name: "Round 98", Phase: "FINISHED", StartTimeSeconds: 1699000000, DurationSeconds: 7200},
	}

	contests := NormalizeCodeforces(entries)

	require.Len(t, contests, 1)
	require.Equal(t, "Codeforces", contests[0].Platform)
	require.Equal(t, "100", contests[0].ID)
	require.Equal(t, int64(1700000000000), contests[0].StartTime, "秒应转换为毫秒")
	require.Equal(t, int64(7200), contests[0].Duration)
}

func TestNormalizeLeetcode(t *testing.T) {
	entries := []leetcode.ContestInfo{
		{Title: "Weekly Contest 500", TitleSlug: "weekly-contest-500", StartTime: 1700001000, Duration: 5400},
	}

	contests := NormalizeLeetcode(entries)

	require.Len(t, contests, 1)
	require.Equal(t, "LeetCode", contests[0].Platform)
	require.Equal(t, "weekly-contest-500", contests[0].ID)
	require.Equal(t, int64(1700001000000), contests[0].StartTime)
}

func TestMergeSortsByStartTime(t *testing.T) {
	merged := Merge(
		[]Contest{
			{Platform: "Codeforces", Title: "later", StartTime: 3000},
			{Platform: "Codeforces", Title: "first", StartTime: 1000},
		},
		[]Contest{
			{Platform: "LeetCode", Title: "middle", StartTime: 2000},
		},
	)

	require.Len(t, merged, 3)
	require.Equal(t, "first", merged[0].Title)
	require.Equal(t, "middle", merged[1].Title)
	require.Equal(t, "later", merged[2].Title)
}

func TestMergeEmptySources(t *testing.T) {
	require.Empty(t, Merge(nil, nil))
	require.Len(t, Merge([]Contest{{Title: "only"}}, nil), 1)
}
