package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// multicastChunkSize 是FCM单次组播调用允许的最大token数量
const multicastChunkSize = 500

// MulticastResult 汇总了一次组播发送的结果
type MulticastResult struct {
	SuccessCount int
	FailureCount int
}

// Dispatcher 是推送发送器的抽象，后台任务和Handler都通过它发送通知。
// 测试中可以用假实现替换FCM。
type Dispatcher interface {
	Send(ctx context.Context, token, title, body string) error
	SendMulticast(ctx context.Context, tokens []string, title, body string) (*MulticastResult, error)
}

// FCMDispatcher 是基于Firebase Cloud Messaging的Dispatcher实现
type FCMDispatcher struct {
	client *messaging.Client
}

// NewFCMDispatcher 创建一个FCMDispatcher
func NewFCMDispatcher(client *messaging.Client) *FCMDispatcher {
	return &FCMDispatcher{client: client}
}

// Send 向单个设备token发送一条通知
func (d *FCMDispatcher) Send(ctx context.Context, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	if _, err := d.client.Send(ctx, message); err != nil {
		return fmt.Errorf("发送单条通知失败: %w", err)
	}
	return nil
}

// SendMulticast 向一组设备token发送同一条通知。
// token数超过FCM单次上限时会自动分块，逐块发送。
func (d *FCMDispatcher) SendMulticast(ctx context.Context, tokens []string, title, body string) (*MulticastResult, error) {
	result := &MulticastResult{}

	for _, chunk := range chunkTokens(tokens, multicastChunkSize) {
		message := &messaging.MulticastMessage{
			Tokens: chunk,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}

		resp, err := d.client.SendEachForMulticast(ctx, message)
		if err != nil {
			return result, fmt.Errorf("组播通知失败: %w", err)
		}
		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
	}

	return result, nil
}

// chunkTokens 将token列表按size切分
func chunkTokens(tokens []string, size int) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	var chunks [][]string
	for size < len(tokens) {
		chunks = append(chunks, tokens[:size])
		tokens = tokens[size:]
	}
	return append(chunks, tokens)
}
