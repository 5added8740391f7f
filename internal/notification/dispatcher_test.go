package notification

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkTokens(t *testing.T) {
	makeTokens := func(n int) []string {
		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = fmt.Sprintf("token-%d", i)
		}
		return tokens
	}

	t.Run("空列表", func(t *testing.T) {
		require.Nil(t, chunkTokens(nil, multicastChunkSize))
	})

	t.Run("不足一块", func(t *testing.T) {
		chunks := chunkTokens(makeTokens(3), multicastChunkSize)
		require.Len(t, chunks, 1)
		require.Len(t, chunks[0], 3)
	})

	t.Run("恰好一块", func(t *testing.T) {
		chunks := chunkTokens(makeTokens(multicastChunkSize), multicastChunkSize)
		require.Len(t, chunks, 1)
		require.Len(t, chunks[0], multicastChunkSize)
	})

	t.Run("跨多块", func(t *testing.T) {
		tokens := makeTokens(multicastChunkSize*2 + 1)
		chunks := chunkTokens(tokens, multicastChunkSize)
		require.Len(t, chunks, 3)
		require.Len(t, chunks[0], multicastChunkSize)
		require.Len(t, chunks[1], multicastChunkSize)
		require.Len(t, chunks[2], 1)

		// 分块不丢不重
		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		require.Equal(t, len(tokens), total)
		require.Equal(t, "token-0", chunks[0][0])
		require.Equal(t, tokens[len(tokens)-1], chunks[2][0])
	})
}
