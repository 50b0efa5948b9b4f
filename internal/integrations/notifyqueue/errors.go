package notifyqueue

import "errors"

var (
	// ErrConnection возвращается при ошибке подключения к брокеру
	ErrConnection = errors.New("notifyqueue: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("notifyqueue: failed to publish message")
)
