package notification_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"checkout/internal/adapters/out/notification"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/redistest"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type RedisPublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (suite *RedisPublisherIntegrationTestSuite) SetupSuite() {
	container, client, err := redistest.Start(context.Background())
	suite.container = container
	suite.client = client
	suite.Require().NoError(err)
}

func (suite *RedisPublisherIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisPublisherIntegrationTestSuite) TestPublish_DeliversJSONMessage() {
	ctx := context.Background()

	sub := suite.client.Subscribe(ctx, "test.notifications")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)

	invoiceID := kernel.NewUUID()
	publisher := notification.NewRedisPublisher(suite.client, "test.notifications")
	err = publisher.Publish(ctx, ports.Notification{
		Event:       "invoice.generated",
		RecipientID: kernel.NewUUID(),
		TemplateKey: "invoice",
		Subject:     kernel.MustEntityRef(kernel.InvoiceEntity, invoiceID),
		Context:     map[string]string{"number": "F00000001"},
	})
	suite.Require().NoError(err)

	select {
	case msg := <-sub.Channel():
		var decoded notification.Message
		suite.Require().NoError(json.Unmarshal([]byte(msg.Payload), &decoded))
		suite.Equal("invoice.generated", decoded.Event)
		suite.Equal("invoice", decoded.Template)
		suite.Equal("invoice", decoded.Subject.Kind)
		suite.Equal(invoiceID.String(), decoded.Subject.ID)
		suite.Equal("F00000001", decoded.Context["number"])
	case <-time.After(5 * time.Second):
		suite.Fail("no message received")
	}
}

func TestRedisPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisPublisherIntegrationTestSuite))
}
