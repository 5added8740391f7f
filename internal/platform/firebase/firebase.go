package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/J33rry/Cozer-Backend/internal/platform/config"
	"google.golang.org/api/option"
)

// App 是全局的Firebase应用实例
var App *firebase.App

// AuthClient 用于校验客户端上传的ID Token
var AuthClient *auth.Client

// MessagingClient 用于发送FCM推送
var MessagingClient *messaging.Client

// Identity 是身份校验通过后得到的用户身份
type Identity struct {
	UID   string
	Email string
	Name  string
}

// InitFirebase 初始化Firebase应用以及Auth和Messaging客户端
func InitFirebase(cfg config.FirebaseConfig) {
	ctx := context.Background()

	var err error
	if cfg.CredentialsFile != "" {
		App, err = firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		// 未显式配置时走 GOOGLE_APPLICATION_CREDENTIALS 环境变量
		App, err = firebase.NewApp(ctx, nil)
	}
	if err != nil {
		panic("无法初始化Firebase应用: " + err.Error())
	}

	AuthClient, err = App.Auth(ctx)
	if err != nil {
		panic("无法初始化Firebase Auth客户端: " + err.Error())
	}

	MessagingClient, err = App.Messaging(ctx)
	if err != nil {
		panic("无法初始化Firebase Messaging客户端: " + err.Error())
	}

	fmt.Println("Firebase 初始化成功！")
}

// VerifyIDToken 校验Bearer凭证，返回已验证的用户身份
func VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("无效的身份凭证: %w", err)
	}

	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}
