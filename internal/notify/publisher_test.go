package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	keys      []string
	published []amqp.Publishing
	err       error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	publisher := NewPublisher(ch, "email_queue", time.Second)

	err := publisher.Publish(context.Background(), domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   "jane@company.com",
		Data: domain.WelcomeMailData{Name: "Jane", Role: domain.RoleEmployee, EmployeeID: "EMP0001"},
	})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "email_queue", ch.keys[0])
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, "welcome", decoded["type"])
	assert.Equal(t, "jane@company.com", decoded["to"])
	assert.Equal(t, "EMP0001", decoded["data"].(map[string]any)["employeeId"])
}

func TestPublisher_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	brokerDown := errors.New("channel closed")
	ch := &fakeChannel{err: brokerDown}
	publisher := NewPublisher(ch, "email_queue", time.Second)
	msg := domain.MailMessage{Type: domain.MailTypeWelcome, To: "jane@company.com"}

	for range 3 {
		err := publisher.Publish(context.Background(), msg)
		assert.ErrorIs(t, err, brokerDown)
	}

	err := publisher.Publish(context.Background(), msg)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
