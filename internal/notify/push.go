package notify

import (
	"context"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// FCMChannel pushes to the owner's phone through Firebase Cloud Messaging.
// Only wired up when a credentials file and device token are configured.
type FCMChannel struct {
	client *messaging.Client
	token  string
}

func NewFCMChannel(ctx context.Context, credentialsFile, deviceToken string) (*FCMChannel, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FCMChannel{client: client, token: deviceToken}, nil
}

func (f *FCMChannel) Push(ctx context.Context, title, body string) error {
	message := &messaging.Message{
		Token: f.token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	_, err := f.client.Send(ctx, message)
	return err
}
