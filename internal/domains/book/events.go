package book

// TopicBookAdded is the ChangeEvent topic published after every addBook.
const TopicBookAdded = "book-added"

// EventPublisher fans a newly persisted book out to live subscribers.
// Publish must not block on slow consumers.
type EventPublisher interface {
	Publish(topic string, payload *Book) int
}
