// Package notify delivers order notifications to staff and customers.
//
// The Dispatcher implements ports.Notifier. It fans every notification out to
// a set of channels (Telegram chats, customer email, the order-changed Kafka
// topic) from a small worker pool. When the queue is full or no workers run,
// delivery happens inline under a timeout. Failures are logged and dropped.
package notify
