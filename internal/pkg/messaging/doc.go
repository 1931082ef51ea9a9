// Package messaging is a small broker agnostic publish/consume layer with
// NATS, NSQ, Kafka and Google Cloud Pub/Sub drivers selected by name at
// startup.
//
// Consumers block until their context is canceled. With auto ack enabled a
// message is acked when the handler returns nil and nacked otherwise, unless
// the handler already responded itself.
package messaging
