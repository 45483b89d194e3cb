// Package rabbitmq publishes order status changes to RabbitMQ for customer
// tracking notifications.
package rabbitmq
