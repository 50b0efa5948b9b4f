package notifyqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события уведомлений в RabbitMQ.
// Вызывающий код трактует публикацию как best-effort: ошибка логируется
// и не влияет на результат бизнес-операции.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     Logger
}

// NewPublisher подключается к брокеру и объявляет durable очередь
func NewPublisher(url, queue string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnection, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnection, err)
	}

	// Объявление идемпотентно; durable — сообщения переживают рестарт брокера
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnection, queue, err)
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
		log:     log,
	}, nil
}

// PublishDepositRequested публикует событие "запрошен депозит"
func (p *Publisher) PublishDepositRequested(ctx context.Context, event DepositRequestedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = имя очереди
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: reservation_id=%d: %v", ErrPublish, event.ReservationID, err)
	}

	p.log.Info("notifyqueue: published deposit_requested event: reservation_id=%d, queue=%s",
		event.ReservationID, p.queue)
	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
