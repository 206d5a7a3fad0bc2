/*
Package rabbitmq provides a dispatch.Sink backed by RabbitMQ. Events are
published as JSON to a topic exchange with the forward subject as routing
key. The concrete AMQP connection reconnects automatically with backoff.
*/
package rabbitmq
