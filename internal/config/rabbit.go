package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wagslane/go-rabbitmq"

	"github.com/vendas-ahora/api-vendas/internal/service/eventservice"
)

func mqURL(mq MQConfig) string {
	return fmt.Sprintf("amqps://%s:%s@%s:%d/%s", mq.User, mq.Password, mq.Host, mq.Port, mq.VHost)
}

func tlsConfig() *tls.Config {
	rootCAs, _ := x509.SystemCertPool()
	return &tls.Config{
		RootCAs:    rootCAs,
		MinVersion: tls.VersionTLS12,
	}
}

// RabbitConn opens a managed connection with automatic reconnects.
func RabbitConn(mq MQConfig) (*rabbitmq.Conn, error) {
	return rabbitmq.NewConn(
		mqURL(mq),
		rabbitmq.WithConnectionOptionsConfig(rabbitmq.Config{
			TLSClientConfig: tlsConfig(),
			Heartbeat:       2 * time.Second,
			Locale:          "en_US",
			Dial:            amqp.DefaultDial(30 * time.Second),
		}),
		rabbitmq.WithConnectionOptionsLogging,
		rabbitmq.WithConnectionOptionsReconnectInterval(5*time.Second),
	)
}

// RabbitPublisher builds a confirming publisher bound to the events
// topic exchange.
func RabbitPublisher(mq MQConfig) (*rabbitmq.Publisher, error) {
	conn, err := RabbitConn(mq)
	if err != nil {
		return nil, err
	}
	return rabbitmq.NewPublisher(
		conn,
		rabbitmq.WithPublisherOptionsLogging,
		rabbitmq.WithPublisherOptionsConfirm,
		rabbitmq.WithPublisherOptionsExchangeName(eventservice.ExchangeName),
		rabbitmq.WithPublisherOptionsExchangeKind("topic"),
		rabbitmq.WithPublisherOptionsExchangeDurable,
		rabbitmq.WithPublisherOptionsExchangeDeclare,
	)
}
