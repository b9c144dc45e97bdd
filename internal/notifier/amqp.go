package notifier

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

// AMQPNotifier fans push messages out through a topic exchange. User
// messages route as push.user.<id>, broadcasts as push.topic.<name>;
// downstream delivery workers bind whichever patterns they serve.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial amqp broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open amqp channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

func (n *AMQPNotifier) Push(ctx context.Context, msg shared.PushMessage) error {
	key := "push.broadcast"
	switch {
	case msg.UserID != nil:
		key = "push.user." + msg.UserID.String()
	case msg.Topic != nil:
		key = "push.topic." + *msg.Topic
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to marshal push message")
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish push message")
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
